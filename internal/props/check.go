package props

import "github.com/vk/stepconf/internal/validate"

// CheckEnums reports every enum field declared on bag whose stored value
// cannot be decoded. The problem path is prefix followed by the field name.
func CheckEnums(c validate.Consumer, prefix string, bag *Bag) {
	for _, f := range bag.fields {
		ef, ok := f.(EnumField)
		if !ok {
			continue
		}
		if _, _, err := ef.GetName(); err != nil {
			c.PropertyError(prefix+f.Name(), err.Error())
		}
	}
}
