package domain

// VMType describes one named machine shape on the appliance. Name is the
// sole identity; the remote keeps the collection as an ordered sequence but
// treats it as a set keyed by name.
type VMType struct {
	Name          string `json:"name"`
	CPU           int    `json:"cpu"`
	RAM           int    `json:"ram"`
	EphemeralDisk int    `json:"ephemeral_disk"`
}

type VMTypeCollection []VMType

// Upsert returns a new collection with v merged in: an element with the
// same name is overwritten in place, otherwise v is appended. All other
// elements and their order are untouched.
func (c VMTypeCollection) Upsert(v VMType) VMTypeCollection {
	result := make(VMTypeCollection, len(c))
	copy(result, c)

	for i := range result {
		if result[i].Name == v.Name {
			result[i] = v
			return result
		}
	}

	return append(result, v)
}

// Find returns the element with the given name, if present.
func (c VMTypeCollection) Find(name string) (VMType, bool) {
	for _, v := range c {
		if v.Name == name {
			return v, true
		}
	}
	return VMType{}, false
}
