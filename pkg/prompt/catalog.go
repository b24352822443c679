package prompt

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed templates/*.yaml
var builtinFS embed.FS

// UseCase identifies one of the built-in question/answer generation prompts.
type UseCase int

const (
	// General asks for context-grounded pairs on any topic in the context.
	General UseCase = iota
	// RepairCost asks for pairs about itemized repair-cost line items.
	RepairCost
	// RepairSelf asks for a multi-turn self-service troubleshooting dialogue.
	RepairSelf
	// UserReview asks for exactly one review pair.
	UserReview
)

var useCaseNames = [...]struct {
	tag  string
	name string
}{
	General:    {"GENERAL", "qna"},
	RepairCost: {"REPAIR_COST", "qna_repair_cost"},
	RepairSelf: {"REPAIR_SELF", "qna_repair_self"},
	UserReview: {"USER_REVIEW", "user_review"},
}

func (u UseCase) valid() bool {
	return u >= 0 && int(u) < len(useCaseNames)
}

// String returns the use case tag, e.g. REPAIR_COST.
func (u UseCase) String() string {
	if !u.valid() {
		return fmt.Sprintf("UseCase(%d)", int(u))
	}
	return useCaseNames[u].tag
}

// Name returns the registry name of the use case's template, e.g. qna_repair_cost.
func (u UseCase) Name() string {
	if !u.valid() {
		return ""
	}
	return useCaseNames[u].name
}

// UseCases returns every use case in declaration order.
func UseCases() []UseCase {
	return []UseCase{General, RepairCost, RepairSelf, UserReview}
}

// ParseUseCase accepts either a tag (REPAIR_COST, case-insensitive) or a
// registry name (qna_repair_cost).
func ParseUseCase(s string) (UseCase, error) {
	s = strings.TrimSpace(s)
	for _, u := range UseCases() {
		if strings.EqualFold(s, u.String()) || s == u.Name() {
			return u, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownUseCase, s)
}

// catalog holds the immutable built-in templates indexed by UseCase.
var catalog = mustBuildCatalog()

func mustBuildCatalog() [len(useCaseNames)]*PromptTemplate {
	loader := NewEmbedLoader(builtinFS, "templates")

	var out [len(useCaseNames)]*PromptTemplate
	for _, u := range UseCases() {
		spec, err := loader.LoadSpec(u.Name() + ".yaml")
		if err != nil {
			panic(fmt.Sprintf("built-in template %s: %v", u, err))
		}
		t, err := spec.Build()
		if err != nil {
			panic(fmt.Sprintf("built-in template %s: %v", u, err))
		}
		out[u] = t
	}
	return out
}

func init() {
	for _, u := range UseCases() {
		MustRegister(u.Name(), catalog[u])
	}
}

// Get returns the built-in template for the use case.
func Get(u UseCase) (Template, error) {
	if !u.valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownUseCase, u)
	}
	return catalog[u], nil
}

// GetQnaPromptTemplate returns the general question/answer template. It
// requires context, domain and num_questions.
func GetQnaPromptTemplate() Template {
	return catalog[General]
}

// GetQnaRepairCostPromptTemplate returns the repair-cost question/answer
// template. It requires context, domain and num_questions.
func GetQnaRepairCostPromptTemplate() Template {
	return catalog[RepairCost]
}

// GetQnaRepairSelfPromptTemplate returns the self-service repair dialogue
// template. It requires context, domain and num_questions.
func GetQnaRepairSelfPromptTemplate() Template {
	return catalog[RepairSelf]
}

// GetUserReviewPromptTemplate returns the user review template. It requires
// only context and always asks for exactly one pair.
func GetUserReviewPromptTemplate() Template {
	return catalog[UserReview]
}
