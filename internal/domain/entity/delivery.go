package entity

import "time"

// Tipos de intervención de livraison.
const (
	DeliveryTypeLivraison     = "LIVRAISON"     // entrega de una orden
	DeliveryTypeStock         = "STOCK"         // intervención sobre el stock
	DeliveryTypeRemboursement = "REMBOURSEMENT" // seguimiento de reembolso
	DeliveryTypeAutre         = "AUTRE"
)

// Estados de una livraison. Sólo avanza: EN_ATTENTE -> EN_COURS -> TERMINEE.
const (
	DeliveryStatusEnAttente = "EN_ATTENTE"
	DeliveryStatusEnCours   = "EN_COURS"
	DeliveryStatusTerminee  = "TERMINEE"
)

// Delivery representa una livraison o intervención. Se crea automáticamente
// en EN_ATTENTE al crear una orden; puede quedar sin enlazar a repartidor.
type Delivery struct {
	ID            string
	DelivererID   *string
	OrderID       *string
	ProductID     *string
	Type          string
	Status        string
	Description   string
	EstimatedDate *time.Time // estimada por el predictor de entregas
	ActualDate    *time.Time // fijada al marcar TERMINEE
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CanTransitionTo valida el avance de estado (nunca hacia atrás).
func (d *Delivery) CanTransitionTo(status string) bool {
	switch d.Status {
	case DeliveryStatusEnAttente:
		return status == DeliveryStatusEnCours || status == DeliveryStatusTerminee
	case DeliveryStatusEnCours:
		return status == DeliveryStatusTerminee
	default:
		return false
	}
}
