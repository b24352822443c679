// Package prompt provides the catalog of prompt templates used to ask a
// language model for Korean question/answer training pairs, built on top of
// LangChain-Go's prompt functionality.
//
// The catalog holds four immutable templates, one per UseCase:
//
//	General     qna              context, domain, num_questions
//	RepairCost  qna_repair_cost  context, domain, num_questions
//	RepairSelf  qna_repair_self  context, domain, num_questions
//	UserReview  user_review      context (always exactly one pair)
//
// Templates use f-string placeholders ({context}) and are filled with Format:
//
//	t := prompt.GetQnaPromptTemplate()
//	text, err := t.Format(map[string]any{
//	    "context":       manual,
//	    "domain":        "스마트폰",
//	    "num_questions": 3,
//	})
//
// Omitting a placeholder fails with ErrMissingVariable. Templates satisfy
// prompts.FormatPrompter and can be handed to a langchaingo chain as-is.
//
// Each template's JSON format block is rendered from qa.Pair examples, so
// the example shape always matches the qa schema. Additional templates in
// the same YAML/JSON layout can be loaded with FileLoader and LoadDir.
package prompt
