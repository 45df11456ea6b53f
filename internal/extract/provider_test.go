package extract

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("recognizeProvider", func() {
	var (
		original   string
		provider   string
		confidence float64
	)

	JustBeforeEach(func() {
		provider, confidence = recognizeProvider(original)
	})

	When("a known provider appears in mixed case", func() {
		BeforeEach(func() {
			original = "Welcome to Shell Gas Station\nPump 4"
		})

		It("should return the uppercased provider", func() {
			Expect(provider).To(Equal("SHELL"))
		})

		It("should report high confidence", func() {
			Expect(confidence).To(Equal(0.95))
		})
	})

	When("lowercasing the preceding text would grow its byte length", func() {
		BeforeEach(func() {
			// U+023A lowercases from 2 bytes to 3
			original = strings.Repeat("Ⱥ", 5) + "shell"
		})

		It("should still slice the occurrence from the original text", func() {
			Expect(provider).To(Equal("SHELL"))
			Expect(confidence).To(Equal(0.95))
		})
	})

	When("lowercasing the preceding text would shrink its byte length", func() {
		BeforeEach(func() {
			// U+0130 lowercases from 2 bytes to 1
			original = "İİ Shell Station"
		})

		It("should return the provider, not a misaligned slice", func() {
			Expect(provider).To(Equal("SHELL"))
			Expect(confidence).To(Equal(0.95))
		})
	})

	When("no known provider matches", func() {
		BeforeEach(func() {
			original = "Joe's Corner\n123 Main St\nThanks!"
		})

		It("should fall back to the first plausible header line", func() {
			Expect(provider).To(Equal("Joe's Corner"))
		})

		It("should report reduced confidence", func() {
			Expect(confidence).To(Equal(0.6))
		})
	})

	When("the header lines carry money labels", func() {
		BeforeEach(func() {
			original = "Invoice 2024\nSubtotal due\nxyz"
		})

		It("should skip blacklisted and short lines", func() {
			Expect(provider).To(BeEmpty())
			Expect(confidence).To(BeZero())
		})
	})

	When("the header line is too long", func() {
		BeforeEach(func() {
			original = strings.Repeat("a", 60) + "\nok"
		})

		It("should find nothing", func() {
			Expect(provider).To(BeEmpty())
			Expect(confidence).To(BeZero())
		})
	})

	When("the plausible line appears after the fifth line", func() {
		BeforeEach(func() {
			original = "a\nb\nc\nd\ne\nLate Vendor Name"
		})

		It("should only scan the first five lines", func() {
			Expect(provider).To(BeEmpty())
			Expect(confidence).To(BeZero())
		})
	})
})
