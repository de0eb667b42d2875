package cart

// Action tags used on the wire.
const (
	TypeAddItem        = "ADD_ITEM"
	TypeRemoveItem     = "REMOVE_ITEM"
	TypeUpdateQuantity = "UPDATE_QUANTITY"
	TypeClearCart      = "CLEAR_CART"
)

// Action is a requested change to the cart.
type Action interface {
	Type() string
}

// AddItem puts one unit of Item in the cart. Item.Quantity is ignored.
type AddItem struct {
	Item Item
}

// RemoveItem drops the item with ID from the cart.
type RemoveItem struct {
	ID string
}

// UpdateQuantity sets the quantity of the item with ID. Zero removes it.
type UpdateQuantity struct {
	ID       string
	Quantity int
}

// ClearCart empties the cart.
type ClearCart struct{}

// Unknown carries an unrecognized tag. Reducing it leaves the cart as is.
type Unknown struct {
	Tag string
}

func (AddItem) Type() string        { return TypeAddItem }
func (RemoveItem) Type() string     { return TypeRemoveItem }
func (UpdateQuantity) Type() string { return TypeUpdateQuantity }
func (ClearCart) Type() string      { return TypeClearCart }
func (u Unknown) Type() string      { return u.Tag }
