// Package model implements the component tree a simulation scene is
// assembled from: the frame hierarchy, rigid bodies, state snapshots and
// the socket/input wiring between components.
package model

// Component is a named node in the model tree. Ownership links components
// upward to the model root; the root itself has no owner.
type Component interface {
	Name() string
	HasOwner() bool
	Owner() Component
}

// ComponentBase supplies the name and ownership link for embedding in
// concrete component types.
type ComponentBase struct {
	name  string
	owner Component
}

// Name returns the component's name.
func (c *ComponentBase) Name() string { return c.name }

// SetName sets the component's name.
func (c *ComponentBase) SetName(name string) { c.name = name }

// HasOwner reports whether the component has been added to an owner.
func (c *ComponentBase) HasOwner() bool { return c.owner != nil }

// Owner returns the owning component, nil for an orphan or the root.
func (c *ComponentBase) Owner() Component { return c.owner }

// SetOwner records the owning component. Called when the component is
// added to a model.
func (c *ComponentBase) SetOwner(o Component) { c.owner = o }

// RootModel walks the ownership chain upward from c and returns the
// enclosing model, or nil when the chain ends without reaching one.
func RootModel(c Component) *Model {
	for c != nil {
		if m, ok := c.(*Model); ok {
			return m
		}
		if !c.HasOwner() {
			return nil
		}
		c = c.Owner()
	}
	return nil
}
