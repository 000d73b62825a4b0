package schema

// Base is the zero-value schema. Embed it to mark a struct as a Schema.
type Base struct{}

func (Base) schema() {}
