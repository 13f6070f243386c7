package catalog

// FieldValue is a sealed interface over the values an attribute can hold.
// Only Text and TextList implement it.
type FieldValue interface {
	fieldValue()
}

// Text is a single-valued field.
type Text string

func (Text) fieldValue() {}

// TextList is a multi-valued field, such as the borrower list.
type TextList []string

func (TextList) fieldValue() {}
