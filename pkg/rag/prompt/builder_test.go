package prompt

import (
	"strings"
	"testing"

	"retail-assistant-be/internal/entity"
	"retail-assistant-be/pkg/llm"

	"github.com/stretchr/testify/assert"
)

func chunk(text string) *entity.ScoredKnowledgeChunk {
	return &entity.ScoredKnowledgeChunk{
		Chunk: &entity.KnowledgeChunk{Text: text},
	}
}

func TestBuildJoinsChunksWithBlankLine(t *testing.T) {
	b := NewBuilder(
		[]*entity.ScoredKnowledgeChunk{chunk("primero"), chunk("segundo")},
		nil,
		"¿horarios?",
	)

	out := b.Build()

	assert.Contains(t, out, "primero\n\nsegundo")
	assert.Contains(t, out, "**Pregunta del cliente:** ¿horarios?")
	assert.True(t, strings.HasSuffix(out, "**Respuesta:**"))
}

func TestBuildPreservesChunkOrder(t *testing.T) {
	b := NewBuilder(
		[]*entity.ScoredKnowledgeChunk{chunk("best"), chunk("second"), chunk("third")},
		nil,
		"q",
	)

	out := b.Build()

	assert.Less(t, strings.Index(out, "best"), strings.Index(out, "second"))
	assert.Less(t, strings.Index(out, "second"), strings.Index(out, "third"))
}

func TestBuildEmptyContext(t *testing.T) {
	out := NewBuilder(nil, nil, "q").Build()
	assert.Contains(t, out, "(sin información disponible)")
}

func TestBuildIncludesHistory(t *testing.T) {
	history := []llm.Message{
		{Role: "user", Content: "hola"},
		{Role: "assistant", Content: "buenas"},
	}

	out := NewBuilder(nil, history, "q").Build()

	assert.Contains(t, out, "Cliente: hola")
	assert.Contains(t, out, "Asistente: buenas")
}

func TestBuildOmitsHistorySectionWhenEmpty(t *testing.T) {
	out := NewBuilder(nil, nil, "q").Build()
	assert.NotContains(t, out, "Historial de conversación")
}
