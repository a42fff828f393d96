package prompt

import (
	"strings"

	"retail-assistant-be/internal/entity"
	"retail-assistant-be/pkg/llm"
)

// Builder assembles the generation prompt for a customer question:
// fixed instructions, retrieved context, recent conversation, question.
type Builder struct {
	chunks   []*entity.ScoredKnowledgeChunk
	history  []llm.Message
	question string
}

func NewBuilder(chunks []*entity.ScoredKnowledgeChunk, history []llm.Message, question string) *Builder {
	return &Builder{
		chunks:   chunks,
		history:  history,
		question: question,
	}
}

func (b *Builder) Build() string {
	var prompt strings.Builder

	b.writeInstructions(&prompt)
	b.writeContext(&prompt)
	b.writeHistory(&prompt)
	b.writeQuestion(&prompt)

	return prompt.String()
}

func (b *Builder) writeInstructions(prompt *strings.Builder) {
	prompt.WriteString("Eres el asistente virtual del Supermercado. Respondes preguntas de clientes sobre productos, horarios, promociones y servicios.\n")
	prompt.WriteString("Responde siempre en español, con un tono amable y conciso.\n")
	prompt.WriteString("Basa tu respuesta únicamente en el contexto proporcionado. Si el contexto no contiene la información solicitada, dilo honestamente y sugiere contactar al supermercado.\n\n")
}

// writeContext joins chunk texts best match first, separated by a blank
// line so the model can tell the chunks apart.
func (b *Builder) writeContext(prompt *strings.Builder) {
	prompt.WriteString("**Contexto:**\n")
	if len(b.chunks) == 0 {
		prompt.WriteString("(sin información disponible)\n\n")
		return
	}

	texts := make([]string, len(b.chunks))
	for i, chunk := range b.chunks {
		texts[i] = chunk.Chunk.Text
	}
	prompt.WriteString(strings.Join(texts, "\n\n"))
	prompt.WriteString("\n\n")
}

func (b *Builder) writeHistory(prompt *strings.Builder) {
	if len(b.history) == 0 {
		return
	}

	prompt.WriteString("**Historial de conversación:**\n")
	for _, msg := range b.history {
		role := "Cliente"
		if msg.Role == "assistant" {
			role = "Asistente"
		}
		prompt.WriteString(role)
		prompt.WriteString(": ")
		prompt.WriteString(msg.Content)
		prompt.WriteString("\n")
	}
	prompt.WriteString("\n")
}

func (b *Builder) writeQuestion(prompt *strings.Builder) {
	prompt.WriteString("**Pregunta del cliente:** ")
	prompt.WriteString(b.question)
	prompt.WriteString("\n**Respuesta:**")
}
