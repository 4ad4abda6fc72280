package chat

import (
	"fmt"
	"strings"

	"portfoliorag/internal/domain"
)

// BuildSystemPrompt grounds the assistant in the retrieved context. With an
// empty context it falls back to a generic portfolio assistant prompt.
func BuildSystemPrompt(context string, sources []domain.Source, name string) string {
	if name == "" {
		name = "ce candidat"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Tu es un assistant IA qui répond aux questions sur le CV et le portfolio de %s.", name)

	if strings.TrimSpace(context) == "" {
		b.WriteString("\n\nAucun contexte spécifique trouvé dans le CV. Réponds de manière générale en tant qu'assistant de portfolio professionnel.")
		return b.String()
	}

	b.WriteString("\n\nCONTEXTE du CV/Portfolio:\n")
	b.WriteString(context)

	if len(sources) > 0 {
		b.WriteString("\n\nSOURCES utilisées:")
		for i, s := range sources {
			fmt.Fprintf(&b, "\n%d. %s (%s) - Pertinence: %d%%", i+1, s.Title, s.Type, s.Similarity)
		}
	}

	b.WriteString(`

INSTRUCTIONS:
- Réponds UNIQUEMENT en te basant sur les informations du contexte fourni
- Si l'information n'est pas dans le contexte, dis-le clairement
- Sois précis, professionnel et engageant
- Cite les sections pertinentes quand c'est utile
- Réponds en français`)
	return b.String()
}
