package privacy_test

import (
	"strings"
	"unicode/utf8"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mahfuzhasan/officer-registry/internal/privacy"
)

var _ = Describe("Masker", func() {
	Describe("mobile numbers", func() {
		It("should keep the first 3 and last 2 characters and preserve length", func() {
			// When
			masked := privacy.Mask(privacy.FieldMobile, "01712345678")

			// Then
			Expect(masked).To(Equal("017******78"))
			Expect(utf8.RuneCountInString(masked)).To(Equal(len("01712345678")))
		})

		It("should star short values entirely", func() {
			Expect(privacy.Mask(privacy.FieldMobile, "12345")).To(Equal("*****"))
			Expect(privacy.Mask(privacy.FieldMobile, "12")).To(Equal("**"))
			Expect(privacy.Mask(privacy.FieldMobile, "")).To(Equal(""))
		})
	})

	Describe("email addresses", func() {
		It("should keep the first character of the local part and the full domain", func() {
			// When
			masked := privacy.Mask(privacy.FieldEmail, "jane.doe@agency.gov")

			// Then
			Expect(masked).To(Equal("j*******@agency.gov"))
		})

		It("should keep a single-character local part intact", func() {
			masked := privacy.Mask(privacy.FieldEmail, "j@agency.gov")
			Expect(masked).To(Equal("j@agency.gov"))
		})

		It("should fully replace values that do not look like an email", func() {
			Expect(privacy.Mask(privacy.FieldEmail, "not-an-email")).To(Equal("∗∗∗∗∗∗∗∗"))
			Expect(privacy.Mask(privacy.FieldEmail, "@agency.gov")).To(Equal("∗∗∗∗∗∗∗∗"))
		})
	})

	Describe("national IDs and birth dates", func() {
		It("should replace the whole value with the fixed placeholder", func() {
			// A partial reveal of an identity number is still an identity
			// number, so no digits survive.
			Expect(privacy.Mask(privacy.FieldNationalID, "19851234567890123")).To(Equal("∗∗∗∗∗∗∗∗"))
			Expect(privacy.Mask(privacy.FieldDateOfBirth, "1985-02-14")).To(Equal("∗∗∗∗∗∗∗∗"))
		})

		It("should not leak the value length", func() {
			a := privacy.Mask(privacy.FieldNationalID, "123")
			b := privacy.Mask(privacy.FieldNationalID, "12345678901234567890")
			Expect(a).To(Equal(b))
		})
	})

	Describe("salary figures", func() {
		It("should replace the whole value with a dash", func() {
			Expect(privacy.Mask(privacy.FieldSalary, "95000")).To(Equal("—"))
		})
	})

	Describe("unknown fields", func() {
		It("should fall back to the opaque placeholder", func() {
			masked := privacy.Mask("shoe_size", "44")
			Expect(masked).To(Equal("∗∗∗∗∗∗∗∗"))
			Expect(strings.Contains(masked, "44")).To(BeFalse())
		})
	})
})
