package brcode

import "strings"

// Template builds a TLV whose value is the concatenation of children.
func Template(tag string, children ...TLV) TLV {
	return TLV{Tag: tag, Children: children}
}

// Field builds a primitive TLV.
func Field(tag, value string) TLV {
	return TLV{Tag: tag, Value: value}
}

// Encode serializes the field. Children are encoded first and their
// concatenation becomes the value of the outer field.
func (t TLV) Encode() (string, error) {
	var sb strings.Builder
	if err := t.appendTo(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// EncodedValue returns the serialized value without tag and length.
func (t TLV) EncodedValue() (string, error) {
	if t.Children == nil {
		return t.Value, nil
	}
	return PackTLV(t.Children)
}

func (t TLV) appendTo(sb fieldWriter) error {
	value, err := t.EncodedValue()
	if err != nil {
		return err
	}
	return appendField(sb, t.Tag, value)
}

// PackTLV encodes a sequence of fields in order and concatenates them.
func PackTLV(tlvs []TLV) (string, error) {
	var sb strings.Builder
	for _, tlv := range tlvs {
		if err := tlv.appendTo(&sb); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

// FindTLV finds the first field with the given tag.
func FindTLV(tlvs []TLV, tag string) (*TLV, bool) {
	for i := range tlvs {
		if tlvs[i].Tag == tag {
			return &tlvs[i], true
		}
	}
	return nil, false
}
