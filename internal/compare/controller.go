package compare

import "github.com/idilsaglam/compare/internal/model"

// Controller is the surface front ends call. It holds no state of its own.
type Controller struct {
	m *Manager
}

func NewController(m *Manager) *Controller {
	return &Controller{m: m}
}

func (c *Controller) AddToCompare(id, name string) {
	c.m.AddItem(id, name)
}

func (c *Controller) RemoveFromCompare(id string) {
	c.m.RemoveItemByID(id)
}

// RemoveAt removes by 0-based position.
func (c *Controller) RemoveAt(index int) {
	c.m.RemoveItem(index)
}

func (c *Controller) ItemsCompare() []*model.Item {
	return c.m.Items()
}

func (c *Controller) TotalCompareItems() int {
	return c.m.TotalUniqueItems()
}

// ShowCompareButton reports whether id is already in the list.
func (c *Controller) ShowCompareButton(id string) bool {
	return c.m.ItemByID(id) != nil
}

func (c *Controller) Clear() error {
	return c.m.Empty()
}

func (c *Controller) Limit() int {
	return c.m.Limit()
}

func (c *Controller) Manager() *Manager {
	return c.m
}
