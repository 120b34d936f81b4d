package enums

// Page is the screen the rendering collaborator should show.
type Page string

const (
	PageCatalog  Page = "catalog"
	PageCheckout Page = "checkout"
)

// String implements fmt.Stringer.
func (p Page) String() string {
	return string(p)
}
