package extract

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

var _ = Describe("recognizeReceiptNumber", func() {
	var (
		text   string
		number string
	)

	JustBeforeEach(func() {
		number = recognizeReceiptNumber(text)
	})

	When("a receipt label is present", func() {
		BeforeEach(func() {
			text = "Receipt #: R-2024-0042"
		})

		It("should capture the identifier", func() {
			Expect(number).To(Equal("R-2024-0042"))
		})
	})

	When("an invoice label is present", func() {
		BeforeEach(func() {
			text = "INVOICE #A1B2C3"
		})

		It("should capture the identifier", func() {
			Expect(number).To(Equal("A1B2C3"))
		})
	})

	When("only a bare hash identifier is present", func() {
		BeforeEach(func() {
			text = "order #98765 thanks"
		})

		It("should capture it when long enough", func() {
			Expect(number).To(Equal("98765"))
		})
	})

	When("the bare hash identifier is too short", func() {
		BeforeEach(func() {
			text = "table #12"
		})

		It("should find nothing", func() {
			Expect(number).To(BeEmpty())
		})
	})
})

var _ = Describe("recognizeLineItems", func() {
	var (
		text  string
		items []LineItem
	)

	JustBeforeEach(func() {
		items = recognizeLineItems(text)
	})

	When("lines end with two-decimal amounts", func() {
		BeforeEach(func() {
			text = "Coffee 3.50\nCroissant $2.25\nshort\nno amount here"
		})

		It("should emit one item per matching line in order", func() {
			Expect(items).To(HaveLen(2))
			Expect(items[0].Description).To(Equal("Coffee"))
			Expect(items[0].Total.String()).To(Equal("3.5"))
			Expect(items[1].Description).To(Equal("Croissant"))
			Expect(items[1].Total.String()).To(Equal("2.25"))
		})
	})

	When("a line carries a quantity prefix", func() {
		BeforeEach(func() {
			text = "2 x Empanada 7.00"
		})

		It("should fill quantity and unit price", func() {
			Expect(items).To(HaveLen(1))
			Expect(items[0].Description).To(Equal("Empanada"))
			Expect(items[0].Quantity).To(HaveValue(Equal(2)))
			Expect(items[0].UnitPrice).NotTo(BeNil())
			Expect(items[0].UnitPrice.String()).To(Equal("3.5"))
		})
	})

	When("an amount is out of range", func() {
		BeforeEach(func() {
			text = "Yacht 50000.00\nSnack 1.00"
		})

		It("should skip it and keep scanning", func() {
			Expect(items).To(HaveLen(1))
			Expect(items[0].Description).To(Equal("Snack"))
		})
	})
})

var _ = Describe("recognizeTaxSubtotal", func() {
	var (
		text          string
		total         *decimal.Decimal
		tax, subtotal *decimal.Decimal
	)

	BeforeEach(func() {
		total = nil
	})

	JustBeforeEach(func() {
		tax, subtotal = recognizeTaxSubtotal(text, total)
	})

	When("both are labeled", func() {
		BeforeEach(func() {
			text = "Subtotal: 45.00\nIVA: 9.45"
		})

		It("should capture both", func() {
			Expect(tax).NotTo(BeNil())
			Expect(tax.String()).To(Equal("9.45"))
			Expect(subtotal).NotTo(BeNil())
			Expect(subtotal.String()).To(Equal("45"))
		})
	})

	When("the subtotal is missing but total and tax are known", func() {
		BeforeEach(func() {
			text = "Tax: 10.00"
			t := decimal.NewFromFloat(100.00)
			total = &t
		})

		It("should derive the subtotal", func() {
			Expect(subtotal).NotTo(BeNil())
			Expect(subtotal.String()).To(Equal("90"))
		})
	})

	When("neither is labeled and no total is known", func() {
		BeforeEach(func() {
			text = "nothing useful"
		})

		It("should return nothing", func() {
			Expect(tax).To(BeNil())
			Expect(subtotal).To(BeNil())
		})
	})
})
