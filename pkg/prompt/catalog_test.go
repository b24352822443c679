package prompt_test

import (
	"encoding/json"
	"strings"

	"github.com/killallgit/qagen/pkg/prompt"
	"github.com/killallgit/qagen/pkg/qa"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var fullValues = map[string]any{
	"context":       "테스트 문맥",
	"domain":        "스마트폰",
	"num_questions": "3",
}

func without(values map[string]any, key string) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		if k != key {
			out[k] = v
		}
	}
	return out
}

// exampleBlock extracts the JSON objects between the ```json fence and its
// closing fence.
func exampleBlock(text string) string {
	start := strings.Index(text, "```json\n")
	Expect(start).To(BeNumerically(">=", 0))
	rest := text[start+len("```json\n"):]
	end := strings.Index(rest, "\n```")
	Expect(end).To(BeNumerically(">=", 0))
	return rest[:end]
}

var _ = Describe("Catalog", func() {
	getters := map[prompt.UseCase]func() prompt.Template{
		prompt.General:    prompt.GetQnaPromptTemplate,
		prompt.RepairCost: prompt.GetQnaRepairCostPromptTemplate,
		prompt.RepairSelf: prompt.GetQnaRepairSelfPromptTemplate,
		prompt.UserReview: prompt.GetUserReviewPromptTemplate,
	}

	required := map[prompt.UseCase][]string{
		prompt.General:    {"context", "domain", "num_questions"},
		prompt.RepairCost: {"context", "domain", "num_questions"},
		prompt.RepairSelf: {"context", "domain", "num_questions"},
		prompt.UserReview: {"context"},
	}

	exampleCounts := map[prompt.UseCase]int{
		prompt.General:    2,
		prompt.RepairCost: 2,
		prompt.RepairSelf: 3,
		prompt.UserReview: 2,
	}

	It("holds exactly four use cases", func() {
		Expect(prompt.UseCases()).To(Equal([]prompt.UseCase{
			prompt.General, prompt.RepairCost, prompt.RepairSelf, prompt.UserReview,
		}))
	})

	for _, u := range prompt.UseCases() {
		u := u

		Describe(u.String(), func() {
			var template prompt.Template

			BeforeEach(func() {
				template = getters[u]()
			})

			It("is non-empty and declares its placeholders", func() {
				Expect(template.Body()).NotTo(BeEmpty())
				Expect(template.GetInputVariables()).To(ConsistOf(required[u]))
				for _, name := range required[u] {
					Expect(template.Body()).To(ContainSubstring("{" + name + "}"))
				}
			})

			It("is the same template Get and the registry return", func() {
				viaGet, err := prompt.Get(u)
				Expect(err).NotTo(HaveOccurred())
				Expect(viaGet).To(BeIdenticalTo(template))

				viaRegistry, err := prompt.DefaultRegistry.Get(u.Name())
				Expect(err).NotTo(HaveOccurred())
				Expect(viaRegistry).To(BeIdenticalTo(template))
			})

			It("returns equal content on every call", func() {
				Expect(getters[u]().Body()).To(Equal(template.Body()))

				first, err := template.Format(fullValues)
				Expect(err).NotTo(HaveOccurred())
				second, err := getters[u]().Format(fullValues)
				Expect(err).NotTo(HaveOccurred())
				Expect(second).To(Equal(first))
			})

			It("fills completely with no unresolved placeholders", func() {
				text, err := template.Format(fullValues)
				Expect(err).NotTo(HaveOccurred())
				Expect(text).To(ContainSubstring("테스트 문맥"))
				for _, name := range []string{"context", "domain", "num_questions"} {
					Expect(text).NotTo(ContainSubstring("{" + name + "}"))
				}
			})

			It("fails when any required placeholder is omitted", func() {
				for _, name := range required[u] {
					_, err := template.Format(without(fullValues, name))
					Expect(err).To(MatchError(prompt.ErrMissingVariable), "omitting %s", name)
					Expect(err.Error()).To(ContainSubstring(name))
				}
			})

			It("asks for JSON with QUESTION and ANSWER keys in a json fence", func() {
				text, err := template.Format(fullValues)
				Expect(err).NotTo(HaveOccurred())
				Expect(text).To(ContainSubstring("Write the QUESTION and ANSWER in Korean."))
				Expect(text).To(ContainSubstring("# Format:\n```json\n"))

				var pairs []qa.Pair
				Expect(json.Unmarshal([]byte("["+exampleBlock(text)+"]"), &pairs)).To(Succeed())
				Expect(pairs).To(HaveLen(exampleCounts[u]))
				for _, p := range pairs {
					Expect(p.Validate()).To(Succeed())
				}
			})
		})
	}

	Describe("the general template", func() {
		It("renders the documented scenario", func() {
			text, err := prompt.GetQnaPromptTemplate().Format(fullValues)
			Expect(err).NotTo(HaveOccurred())
			Expect(text).To(ContainSubstring("스마트폰"))
			Expect(text).To(ContainSubstring("테스트 문맥"))
			Expect(text).To(ContainSubstring("<context>\n테스트 문맥\n</context>"))
			Expect(text).To(ContainSubstring("exactly **3** questions"))
			Expect(text).NotTo(ContainSubstring("{context}"))
		})

		It("accepts num_questions as an integer", func() {
			values := without(fullValues, "num_questions")
			values["num_questions"] = 5
			text, err := prompt.GetQnaPromptTemplate().Format(values)
			Expect(err).NotTo(HaveOccurred())
			Expect(text).To(ContainSubstring("exactly **5** questions"))
		})

		It("rejects a non-positive num_questions", func() {
			for _, bad := range []any{"0", -2, "many"} {
				values := without(fullValues, "num_questions")
				values["num_questions"] = bad
				_, err := prompt.GetQnaPromptTemplate().Format(values)
				Expect(err).To(MatchError(prompt.ErrInvalidVariable))
			}
		})
	})

	Describe("the repair-self template", func() {
		It("asks for multi-turn conversations", func() {
			Expect(prompt.GetQnaRepairSelfPromptTemplate().Body()).To(ContainSubstring("preferably for multi-turn conversations"))
		})
	})

	Describe("the repair-cost template", func() {
		It("shows currency-formatted answers", func() {
			Expect(prompt.GetQnaRepairCostPromptTemplate().Body()).To(ContainSubstring("457,000원"))
		})
	})

	Describe("the user review template", func() {
		It("always asks for exactly one pair", func() {
			template := prompt.GetUserReviewPromptTemplate()
			Expect(template.Body()).To(ContainSubstring("Create exactly **1** QUESTION and ANSWER pair."))
			Expect(template.Body()).NotTo(ContainSubstring("{num_questions}"))
			Expect(template.Body()).NotTo(ContainSubstring("{domain}"))
		})

		It("ignores values it does not use", func() {
			text, err := prompt.GetUserReviewPromptTemplate().Format(fullValues)
			Expect(err).NotTo(HaveOccurred())
			Expect(text).NotTo(ContainSubstring("스마트폰"))
		})
	})

	Describe("use case lookup", func() {
		It("parses tags and registry names", func() {
			for _, u := range prompt.UseCases() {
				byTag, err := prompt.ParseUseCase(u.String())
				Expect(err).NotTo(HaveOccurred())
				Expect(byTag).To(Equal(u))

				byName, err := prompt.ParseUseCase(u.Name())
				Expect(err).NotTo(HaveOccurred())
				Expect(byName).To(Equal(u))
			}

			u, err := prompt.ParseUseCase("repair_cost")
			Expect(err).NotTo(HaveOccurred())
			Expect(u).To(Equal(prompt.RepairCost))
		})

		It("rejects unknown values", func() {
			_, err := prompt.ParseUseCase("weather")
			Expect(err).To(MatchError(prompt.ErrUnknownUseCase))

			_, err = prompt.Get(prompt.UseCase(42))
			Expect(err).To(MatchError(prompt.ErrUnknownUseCase))
			Expect(prompt.UseCase(42).Name()).To(BeEmpty())
			Expect(prompt.UseCase(42).String()).To(Equal("UseCase(42)"))
		})
	})

	Describe("partial variables", func() {
		It("leave the catalog template untouched", func() {
			base := prompt.GetQnaPromptTemplate()
			bound := base.WithPartialVariables(map[string]any{"domain": "가전제품"})

			text, err := bound.Format(without(fullValues, "domain"))
			Expect(err).NotTo(HaveOccurred())
			Expect(text).To(ContainSubstring("가전제품"))

			_, err = base.Format(without(fullValues, "domain"))
			Expect(err).To(MatchError(prompt.ErrMissingVariable))
		})
	})
})
