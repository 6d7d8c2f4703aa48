package validate

import (
	"github.com/syssam/fieldgate/ability"
	"github.com/syssam/fieldgate/traverse"
)

// pipelines binds the per-shape visitor chains to one resolved field
// set. In strict mode violations fail the walk; otherwise the same
// violations remove the offending member. Order within a chain decides
// which violation a strict walk reports first.
type pipelines struct {
	set    *ability.FieldSet
	strict bool
}

func (p pipelines) pick(reject, strip traverse.Visitor) traverse.Visitor {
	if p.strict {
		return reject
	}
	return strip
}

func (p pipelines) disallowed() traverse.Visitor {
	if p.strict {
		return rejectDisallowed(p.set)
	}
	return stripDisallowed(p.set)
}

func (p pipelines) filters() []traverse.Visitor {
	return []traverse.Visitor{
		p.disallowed(),
		p.pick(rejectAdminUserRestrictedField, stripAdminUserRestrictedField),
		p.pick(rejectSensitive, stripSensitive),
		p.pick(rejectEmptyStructuralValue, stripEmptyStructuralValue),
	}
}

func (p pipelines) sort() []traverse.Visitor {
	return p.filters()
}

func (p pipelines) fields() []traverse.Visitor {
	return []traverse.Visitor{
		p.disallowed(),
		p.pick(rejectSensitive, stripSensitive),
	}
}

func (p pipelines) populate() []traverse.Visitor {
	return []traverse.Visitor{
		p.disallowed(),
		p.pick(rejectAdminUserRestrictedField, stripAdminUserRestrictedField),
		p.pick(rejectHidden, stripHidden),
		p.pick(rejectSensitive, stripSensitive),
	}
}

// input validates payload writes. Sensitive attributes stay writable
// here: setting a password is legitimate, reading it back is not.
func (p pipelines) input() []traverse.Visitor {
	return []traverse.Visitor{
		p.pick(rejectHidden, stripHidden),
		p.disallowed(),
		stripCreatorRoles,
	}
}

// output always strips; responses are trimmed, never failed.
func (p pipelines) output() []traverse.Visitor {
	return []traverse.Visitor{
		stripHidden,
		stripDisallowed(p.set),
		stripSensitive,
		stripAdminUserRestrictedField,
		stripCreatorRoles,
	}
}
