package chat

import (
	"context"
	"fmt"
	"strings"
)

// contextSeparator sits between consecutive documents in the assembled context.
const contextSeparator = "\n\n"

const promptTemplate = "Based on these documents:\n\n%s\n\nQuestion: %s\n\nPlease provide a helpful answer based on the documents. If the information isn't available, say so."

// BuildContext joins the content of every stored document in insertion order.
func (s *Service) BuildContext(ctx context.Context) (string, error) {
	contents, err := s.Docs.AllContent(ctx)
	if err != nil {
		return "", fmt.Errorf("load document content: %w", err)
	}
	return strings.Join(contents, contextSeparator), nil
}

func buildPrompt(docContext, question string) string {
	return fmt.Sprintf(promptTemplate, docContext, question)
}
