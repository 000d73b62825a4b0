package schema

// String is a plain-text schema for prompts and tool payloads that carry no
// structure of their own.
type String string

func (String) schema() {}

func (s String) String() string {
	return string(s)
}

func (s *String) Unmarshal(bs []byte) error {
	*s = String(bs)
	return nil
}
