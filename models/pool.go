package models

type CreatedPool struct {
	Code string `json:"code"`
}

type ToastType string

const (
	ToastSuccess ToastType = "success"
	ToastError   ToastType = "error"
)

// Toast is a transient notification shown after a form submission.
type Toast struct {
	Message string    `json:"message"`
	Type    ToastType `json:"type"`
}
