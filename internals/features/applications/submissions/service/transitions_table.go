package service

import (
	"fmt"

	"hallticket_backend/internals/features/applications/submissions/model"
	helper "hallticket_backend/internals/helpers"
)

type transition struct {
	From string
	To   string
}

// Status sama selalu diizinkan (no-op); approved → approved tetap cek ulang penerbitan tiket.
var transitionsTable = []transition{
	{From: model.StatusDraft, To: model.StatusSubmitted},
	{From: model.StatusSubmitted, To: model.StatusApproved},
	{From: model.StatusSubmitted, To: model.StatusRejected},
	{From: model.StatusApproved, To: model.StatusRejected},
	{From: model.StatusRejected, To: model.StatusApproved},
}

// CheckTransition mengembalikan ErrInvalidTransition bila from → to tidak ada di tabel.
func CheckTransition(from, to string) error {
	if from == to {
		return nil
	}
	for _, tr := range transitionsTable {
		if tr.From == from && tr.To == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s → %s", helper.ErrInvalidTransition, from, to)
}
