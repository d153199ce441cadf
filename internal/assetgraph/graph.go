package assetgraph

// Well-known container object kinds consumed by the engines.
const (
	KindGameObject    = "GameObject"
	KindMonoBehaviour = "MonoBehaviour"
	KindTransform     = "Transform"
	KindRectTransform = "RectTransform"
	KindTexture2D     = "Texture2D"
	KindMaterial      = "Material"
)

// Object is one addressable unit inside a container. Field state is
// read as a Tree snapshot and written back explicitly with SaveFields;
// nothing mutates an object behind the caller's back.
type Object interface {
	// PathID is the container-scoped stable integer identifier.
	PathID() int64
	// Kind is the declared container class name (KindMonoBehaviour etc.).
	Kind() string
	// ScriptName is the declared script type for script-backed objects
	// and empty for everything else.
	ScriptName() string
	// Fields returns a mutable view of the object's field tree. The view
	// is private to the caller until committed with SaveFields.
	Fields() (Tree, error)
	// SaveFields writes a field tree back as the object's content.
	SaveFields(Tree) error
}

// Texture extends Object with raw bitmap payload access.
type Texture interface {
	Object
	// Image returns the raw bitmap payload and its dimensions.
	Image() (data []byte, width, height int, err error)
	// SetImage replaces the bitmap payload and dimensions.
	SetImage(data []byte, width, height int) error
}

// Container is one loaded asset container. Objects() enumerates in the
// container's own stable order; engines rely on that order for
// deterministic extraction output.
type Container interface {
	Name() string
	Objects() []Object
	Object(pathID int64) (Object, bool)
	// Save serializes the container, including every committed mutation.
	Save() ([]byte, error)
}
