package model

// ItemID identifies a semantic field of the device model.
type ItemID int

const (
	ItemAvailability ItemID = iota
	ItemAccess
	ItemCycle
	ItemXPosition
	ItemYPosition
	ItemExecution
	ItemProgram
	ItemACConnected
	ItemACState
	ItemBatteryRemaining
	ItemBatteryState
)

// ValueType describes the Go type behind an item.
type ValueType string

const (
	TypeEnum      ValueType = "enum"
	TypeInt       ValueType = "int"
	TypeString    ValueType = "string"
	TypeBool      ValueType = "bool"
	TypeCondition ValueType = "condition"
)

// ComponentKind is the kind of a group of items.
type ComponentKind string

const (
	KindDevice     ComponentKind = "Device"
	KindAxes       ComponentKind = "Axes"
	KindPath       ComponentKind = "Path"
	KindController ComponentKind = "Controller"
)

// ComponentKey identifies a component by kind and logical name.
type ComponentKey struct {
	Kind ComponentKind
	Name string
}

var deviceKey = ComponentKey{Kind: KindDevice}

// ItemSpec is the static metadata of an item.
type ItemSpec struct {
	ID        ItemID
	Name      string
	Category  Category
	Type      ValueType
	Units     string
	Component ComponentKey
}

// Logical component names.
const (
	PointerAxes     = "pointer"
	MainPath        = "main"
	PowerController = "power"
)

// registry is the single source of wire names and metadata.
var registry = []ItemSpec{
	{ID: ItemAvailability, Name: "avail", Category: CategoryEvent, Type: TypeEnum, Component: deviceKey},
	{ID: ItemAccess, Name: "access", Category: CategoryCondition, Type: TypeCondition, Component: deviceKey},
	{ID: ItemCycle, Name: "cycle", Category: CategoryCondition, Type: TypeCondition, Component: deviceKey},
	{ID: ItemXPosition, Name: "xPos", Category: CategorySample, Type: TypeInt, Units: "PIXEL",
		Component: ComponentKey{Kind: KindAxes, Name: PointerAxes}},
	{ID: ItemYPosition, Name: "yPos", Category: CategorySample, Type: TypeInt, Units: "PIXEL",
		Component: ComponentKey{Kind: KindAxes, Name: PointerAxes}},
	{ID: ItemExecution, Name: "execution", Category: CategoryEvent, Type: TypeEnum,
		Component: ComponentKey{Kind: KindPath, Name: MainPath}},
	{ID: ItemProgram, Name: "prog", Category: CategoryEvent, Type: TypeString,
		Component: ComponentKey{Kind: KindPath, Name: MainPath}},
	{ID: ItemACConnected, Name: "ac", Category: CategoryEvent, Type: TypeBool,
		Component: ComponentKey{Kind: KindController, Name: PowerController}},
	{ID: ItemACState, Name: "acState", Category: CategoryCondition, Type: TypeCondition,
		Component: ComponentKey{Kind: KindController, Name: PowerController}},
	{ID: ItemBatteryRemaining, Name: "battery", Category: CategorySample, Type: TypeInt, Units: "PERCENT",
		Component: ComponentKey{Kind: KindController, Name: PowerController}},
	{ID: ItemBatteryState, Name: "batteryState", Category: CategoryCondition, Type: TypeCondition,
		Component: ComponentKey{Kind: KindController, Name: PowerController}},
}

// Lookup returns the spec registered for id.
func Lookup(id ItemID) (ItemSpec, bool) {
	for _, spec := range registry {
		if spec.ID == id {
			return spec, true
		}
	}

	return ItemSpec{}, false
}

// Specs returns a copy of the registration table.
func Specs() []ItemSpec {
	out := make([]ItemSpec, len(registry))
	copy(out, registry)

	return out
}

func mustLookup(id ItemID) ItemSpec {
	spec, ok := Lookup(id)
	if !ok {
		panic("model: item not registered")
	}

	return spec
}
