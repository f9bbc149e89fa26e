package cli

// WithDuBinary returns a copy of the CLI running binary instead of du.
func (c CLI) WithDuBinary(binary string) CLI {
	c.duBinary = binary

	return c
}
