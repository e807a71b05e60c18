package ir

// IntegerCmpCond is the condition of an Icmp value. Signedness matters only for the
// ordering conditions; equality is sign-agnostic.
type IntegerCmpCond byte

const (
	IntegerCmpCondEqual                      IntegerCmpCond = iota // ==
	IntegerCmpCondNotEqual                                         // !=
	IntegerCmpCondSignedLessThan                                   // signed <
	IntegerCmpCondSignedGreaterThanOrEqual                         // signed >=
	IntegerCmpCondSignedGreaterThan                                // signed >
	IntegerCmpCondSignedLessThanOrEqual                            // signed <=
	IntegerCmpCondUnsignedLessThan                                 // unsigned <
	IntegerCmpCondUnsignedGreaterThanOrEqual                       // unsigned >=
	IntegerCmpCondUnsignedGreaterThan                              // unsigned >
	IntegerCmpCondUnsignedLessThanOrEqual                          // unsigned <=
	integerCmpCondEnd
)

var integerCmpCondStrings = [...]string{
	IntegerCmpCondEqual:                      "eq",
	IntegerCmpCondNotEqual:                   "neq",
	IntegerCmpCondSignedLessThan:             "lt_s",
	IntegerCmpCondSignedGreaterThanOrEqual:   "ge_s",
	IntegerCmpCondSignedGreaterThan:          "gt_s",
	IntegerCmpCondSignedLessThanOrEqual:      "le_s",
	IntegerCmpCondUnsignedLessThan:           "lt_u",
	IntegerCmpCondUnsignedGreaterThanOrEqual: "ge_u",
	IntegerCmpCondUnsignedGreaterThan:        "gt_u",
	IntegerCmpCondUnsignedLessThanOrEqual:    "le_u",
}

// String implements fmt.Stringer.
func (i IntegerCmpCond) String() string {
	if i >= integerCmpCondEnd {
		panic("invalid integer comparison condition")
	}
	return integerCmpCondStrings[i]
}
