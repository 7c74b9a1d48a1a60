package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Describe flattens validator errors into a single user-facing message.
func Describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s wajib diisi", strings.ToLower(fe.Field())))
		case "email":
			msgs = append(msgs, "Email tidak valid")
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s minimal %s karakter", strings.ToLower(fe.Field()), fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s maksimal %s karakter", strings.ToLower(fe.Field()), fe.Param()))
		case "periode":
			msgs = append(msgs, "Periode tidak valid")
		case "division":
			msgs = append(msgs, "Divisi tidak ditemukan")
		default:
			msgs = append(msgs, fmt.Sprintf("%s tidak valid", strings.ToLower(fe.Field())))
		}
	}
	return strings.Join(msgs, "; ")
}
