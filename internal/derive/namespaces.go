package derive

// Default annotation sources.
const (
	SlicingNamespace       = "http://hl7.org/fhir/slicing"
	DomainNamespace        = "http://hl7.org/fhir"
	DocumentationNamespace = "http://www.eclipse.org/emf/2002/GenModel"
)

// Detail keys written by the applier.
const (
	KeyRules            = "rules"
	KeyOrdered          = "ordered"
	KeyDescription      = "description"
	KeyMustSupport      = "mustSupport"
	KeyBindingValueSet  = "binding.valueSet"
	KeyBindingStrength  = "binding.strength"
	KeyDocumentation    = "documentation"
	discriminatorPrefix = "discriminator:"
)

// Namespaces holds the annotation source URIs.
type Namespaces struct {
	Slicing       string
	Domain        string
	Documentation string
}

// DefaultNamespaces returns the FHIR slicing, FHIR and GenModel sources.
func DefaultNamespaces() Namespaces {
	return Namespaces{
		Slicing:       SlicingNamespace,
		Domain:        DomainNamespace,
		Documentation: DocumentationNamespace,
	}
}

// withDefaults fills empty sources from DefaultNamespaces.
func (n Namespaces) withDefaults() Namespaces {
	d := DefaultNamespaces()

	if n.Slicing == "" {
		n.Slicing = d.Slicing
	}

	if n.Domain == "" {
		n.Domain = d.Domain
	}

	if n.Documentation == "" {
		n.Documentation = d.Documentation
	}

	return n
}
