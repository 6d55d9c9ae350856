package llm

import "context"

// Message es un turno de conversación para el modelo.
// ImageURL es opcional: el adapter decide cómo adjuntarla (multimodal).
type Message struct {
	Role     string
	Content  string
	ImageURL string
}

// CompletionRequest describe una llamada única al modelo.
// Sin retries ni backoff: una falla es terminal para ese request (ver spec de errores).
type CompletionRequest struct {
	Messages    []Message
	Temperature float64
	JSONObject  bool // pedir salida JSON estricta al proveedor
}

// ChatCompleter es el puerto hacia el proveedor de lenguaje.
// Devuelve el texto crudo de la respuesta; el parseo/validación es del dominio.
type ChatCompleter interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
