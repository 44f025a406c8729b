package geometry

import "fmt"

// ConfigurationError reports an invalid attachment configuration found
// when a geometry is connected into a model: both attachment modes set,
// neither set, or a frame name that does not resolve.
type ConfigurationError struct {
	// Kind is the concrete variant, e.g. "Sphere".
	Kind string
	// Name is the instance name.
	Name string
	// Reason states what is wrong.
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("geometry: %s %q %s", e.Kind, e.Name, e.Reason)
}

// AttachmentError reports a frame chain that does not end at a physical
// frame, found while resolving a geometry's transform.
type AttachmentError struct {
	Kind string
	Name string
}

func (e *AttachmentError) Error() string {
	return fmt.Sprintf("geometry: frame for %s %q is not attached to a physical frame", e.Kind, e.Name)
}
