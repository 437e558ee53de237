package entity

import (
	"encoding/json"
	"errors"
)

type ModalMode string

const (
	ModalClosed ModalMode = "closed"
	ModalCreate ModalMode = "create"
	ModalEdit   ModalMode = "edit"
	ModalView   ModalMode = "view"
)

var ErrModalTargetRequired = errors.New("edit and view modals need a target record")

// Modal is the active overlay of a screen. Fields are unexported so an edit
// or view modal cannot exist without a target; the zero value is closed.
type Modal struct {
	mode   ModalMode
	target ID
}

func ClosedModal() Modal {
	return Modal{mode: ModalClosed}
}

func CreateModal() Modal {
	return Modal{mode: ModalCreate}
}

func EditModal(target ID) (Modal, error) {
	if target.IsZero() {
		return Modal{}, ErrModalTargetRequired
	}
	return Modal{mode: ModalEdit, target: target}, nil
}

func ViewModal(target ID) (Modal, error) {
	if target.IsZero() {
		return Modal{}, ErrModalTargetRequired
	}
	return Modal{mode: ModalView, target: target}, nil
}

func (m Modal) Mode() ModalMode {
	if m.mode == "" {
		return ModalClosed
	}
	return m.mode
}

func (m Modal) Target() (ID, bool) {
	return m.target, !m.target.IsZero()
}

func (m Modal) IsOpen() bool {
	return m.Mode() != ModalClosed
}

// Editable reports whether the modal owns a mutable draft.
func (m Modal) Editable() bool {
	return m.mode == ModalCreate || m.mode == ModalEdit
}

func (m Modal) MarshalJSON() ([]byte, error) {
	out := struct {
		Mode   ModalMode `json:"mode"`
		Target *ID       `json:"target,omitempty"`
	}{Mode: m.Mode()}
	if !m.target.IsZero() {
		t := m.target
		out.Target = &t
	}
	return json.Marshal(out)
}
