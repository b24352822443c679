package prompt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/chains"
	"github.com/tmc/langchaingo/llms/fake"
	"github.com/tmc/langchaingo/prompts"
)

// TestCatalogWithLangChain verifies catalog templates drop into LangChain-Go chains
func TestCatalogWithLangChain(t *testing.T) {
	t.Run("templates implement FormatPrompter", func(t *testing.T) {
		for _, u := range UseCases() {
			template, err := Get(u)
			require.NoError(t, err)

			var _ prompts.FormatPrompter = template
		}
	})

	t.Run("llm chain formats the catalog template", func(t *testing.T) {
		fakeLLM := fake.NewFakeLLM([]string{
			"```json\n[{\"QUESTION\": \"질문\", \"ANSWER\": \"답변입니다.\"}]\n```",
		})

		chain := chains.NewLLMChain(fakeLLM, GetQnaPromptTemplate())
		result, err := chain.Call(context.Background(), map[string]any{
			"context":       "갤럭시 S23 사용 설명서",
			"domain":        "스마트폰",
			"num_questions": 1,
		})
		require.NoError(t, err)

		output, ok := result["text"].(string)
		require.True(t, ok)
		assert.Contains(t, output, "QUESTION")
	})

	t.Run("missing placeholder stops the chain before the llm", func(t *testing.T) {
		fakeLLM := fake.NewFakeLLM([]string{"unused"})

		chain := chains.NewLLMChain(fakeLLM, GetUserReviewPromptTemplate())
		_, err := chain.Call(context.Background(), map[string]any{})
		assert.ErrorIs(t, err, ErrMissingVariable)
	})
}
