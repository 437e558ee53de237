package dto

import (
	"go-clinic-dashboard/internal/domain/entity"
)

// Request DTOs

type OpenModalRequest struct {
	Mode   entity.ModalMode `json:"mode" validate:"required,oneof=create edit view closed"`
	Target entity.ID        `json:"target"`
}

type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type DismissAlertRequest struct {
	ID string `json:"id" validate:"required,uuid"`
}

// Response DTOs

type KindResponse struct {
	Name      string `json:"name"`
	CanView   bool   `json:"can_view"`
	CanManage bool   `json:"can_manage"`
}
