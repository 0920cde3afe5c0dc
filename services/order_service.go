package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/ShashankBagda/AI-Restaurant/live"
	"github.com/ShashankBagda/AI-Restaurant/models"
	"github.com/ShashankBagda/AI-Restaurant/utils"
)

// OrderLineRequest is one (item, quantity) pair from a create request.
type OrderLineRequest struct {
	ItemID   string `json:"item_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}

// OrderService owns the order lifecycle: creation, status transitions,
// payment and rating. Mutations on the same order serialize on a per-order
// lock; different orders proceed in parallel.
type OrderService struct {
	DB        *gorm.DB
	Catalog   *CatalogService
	Scheduler *Scheduler
	Inventory *InventoryService
	Hub       *live.Hub

	// locks maps order id -> *sync.Mutex. Entries are never removed:
	// evicting one safely would need refcounting, and the table grows by
	// one mutex per order touched in this process lifetime, reset on
	// restart.
	locks sync.Map
}

func NewOrderService(db *gorm.DB, catalog *CatalogService, scheduler *Scheduler, inventory *InventoryService, hub *live.Hub) *OrderService {
	return &OrderService{
		DB:        db,
		Catalog:   catalog,
		Scheduler: scheduler,
		Inventory: inventory,
		Hub:       hub,
	}
}

func (svc *OrderService) lockOrder(orderID uint) func() {
	v, _ := svc.locks.LoadOrStore(orderID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// Create builds an order for a customer session: resolves every line
// against the catalog, assigns kitchen staff per category, computes the
// total and persists with status placed / unpaid. Inventory is decremented
// best-effort afterwards; a failed decrement is logged for reconciliation
// but never rolls the order back.
func (svc *OrderService) Create(session models.Session, tableID string, lines []OrderLineRequest) (models.Order, error) {
	if session.Role != models.RoleCustomer {
		return models.Order{}, ErrForbidden
	}
	if tableID == "" || len(lines) == 0 {
		return models.Order{}, errors.Join(ErrInvalidInput, errors.New("table_id and items required"))
	}

	now := time.Now()
	order := models.Order{
		UserID:        session.UserID,
		TableID:       tableID,
		Status:        models.StatusPlaced,
		PaymentStatus: models.PaymentUnpaid,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	for _, line := range lines {
		if line.Quantity < 1 {
			return models.Order{}, errors.Join(ErrInvalidInput, fmt.Errorf("quantity for %s must be at least 1", line.ItemID))
		}
		item, err := svc.Catalog.Resolve(line.ItemID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return models.Order{}, errors.Join(ErrInvalidInput, fmt.Errorf("unknown item %s", line.ItemID))
			}
			return models.Order{}, err
		}

		assignee, err := svc.Scheduler.AssignForCategory(item.Category)
		if err != nil {
			return models.Order{}, err
		}

		order.Lines = append(order.Lines, models.OrderLine{
			ItemID:     item.ItemID,
			Name:       item.Name,
			Price:      item.Price,
			Category:   item.Category,
			Quantity:   line.Quantity,
			AssignedTo: assignee,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		order.Total += float64(line.Quantity) * item.Price
	}

	if err := withRetry(func() error { return svc.DB.Create(&order).Error }); err != nil {
		return models.Order{}, err
	}

	// Best-effort side effect, exactly one call per line. Not transactional
	// with the order insert: on failure the order stands and the counter is
	// reconciled manually from this log line.
	for _, line := range order.Lines {
		if err := svc.Inventory.Decrement(line.ItemID, line.Quantity); err != nil {
			utils.ErrorLogger.Errorf("Inventory decrement failed (order=%d item=%s qty=%d): %v",
				order.ID, line.ItemID, line.Quantity, err)
		}
	}

	svc.Hub.Publish(live.Event{
		Type:    live.EventOrderCreated,
		OrderID: order.ID,
		Status:  order.Status,
		Total:   order.Total,
		TableID: order.TableID,
	})

	utils.InfoLogger.Printf("Order %d placed by %s (table=%s, total=%.2f)", order.ID, session.UserID, tableID, order.Total)
	return order, nil
}

// ListForViewer returns the orders a staff or admin session may see, newest
// first. Admins see everything; staff see only orders with at least one
// line in their specialty set or explicitly assigned to them, and an order
// with zero matching lines is omitted entirely.
func (svc *OrderService) ListForViewer(session models.Session) ([]models.Order, error) {
	if session.Role != models.RoleAdmin && session.Role != models.RoleStaff {
		return nil, ErrForbidden
	}

	var orders []models.Order
	err := withRetry(func() error {
		return svc.DB.Preload("Lines").Order("id desc").Find(&orders).Error
	})
	if err != nil {
		return nil, err
	}
	if session.Role == models.RoleAdmin {
		return orders, nil
	}

	var visible []models.Order
	for _, order := range orders {
		for _, line := range order.Lines {
			if line.AssignedTo == session.UserID || models.HasCategory(session.Specialty, line.Category) {
				visible = append(visible, order)
				break
			}
		}
	}
	return visible, nil
}

// ListMine returns the calling customer's own orders, newest first, with
// any rating attached.
func (svc *OrderService) ListMine(session models.Session) ([]models.Order, error) {
	if session.Role != models.RoleCustomer {
		return nil, ErrForbidden
	}
	var orders []models.Order
	err := withRetry(func() error {
		return svc.DB.Preload("Lines").Where("user_id = ?", session.UserID).Order("id desc").Find(&orders).Error
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus overwrites the order status with any of the four recognized
// states. Forward-only progress is intentionally not enforced: staff and
// admins may walk an order backwards to correct mistakes. An admin may also
// reassign every line via assignedTo, with no qualification check.
func (svc *OrderService) UpdateStatus(session models.Session, orderID uint, status, assignedTo string) error {
	if session.Role != models.RoleAdmin && session.Role != models.RoleStaff {
		return ErrForbidden
	}
	if !models.ValidStatus(status) {
		return errors.Join(ErrInvalidInput, fmt.Errorf("unknown status %q", status))
	}

	unlock := svc.lockOrder(orderID)
	defer unlock()

	var order models.Order
	if err := svc.DB.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return errors.Join(ErrUnavailable, err)
	}

	order.Status = status
	order.UpdatedAt = time.Now()
	if err := withRetry(func() error { return svc.DB.Save(&order).Error }); err != nil {
		return err
	}

	if assignedTo != "" && session.Role == models.RoleAdmin {
		err := withRetry(func() error {
			return svc.DB.Model(&models.OrderLine{}).
				Where("order_id = ?", orderID).
				Updates(map[string]interface{}{"assigned_to": assignedTo, "updated_at": time.Now()}).Error
		})
		if err != nil {
			return err
		}
	}

	svc.Hub.Publish(live.Event{
		Type:    live.EventOrderStatus,
		OrderID: order.ID,
		Status:  order.Status,
	})
	return nil
}

// Pay settles an order exactly once. The check-then-act runs inside the
// per-order lock and a transaction with a conditional update on
// payment_status, so two concurrent attempts cannot both charge.
func (svc *OrderService) Pay(session models.Session, orderID uint, method string) (models.Payment, error) {
	if session.Role != models.RoleCustomer {
		return models.Payment{}, ErrForbidden
	}
	if !models.ValidMethod(method) {
		return models.Payment{}, errors.Join(ErrInvalidInput, fmt.Errorf("unknown payment method %q", method))
	}

	unlock := svc.lockOrder(orderID)
	defer unlock()

	order, err := svc.ownedOrder(session, orderID)
	if err != nil {
		return models.Payment{}, err
	}

	payment := models.Payment{
		OrderID:   order.ID,
		Amount:    order.Total,
		Method:    method,
		Status:    "success",
		CreatedAt: time.Now(),
	}

	err = svc.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND payment_status = ?", order.ID, models.PaymentUnpaid).
			Updates(map[string]interface{}{"payment_status": models.PaymentPaid, "updated_at": time.Now()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyPaid
		}
		return tx.Create(&payment).Error
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyPaid) {
			return models.Payment{}, ErrAlreadyPaid
		}
		return models.Payment{}, errors.Join(ErrUnavailable, err)
	}

	svc.Hub.Publish(live.Event{
		Type:    live.EventPayment,
		OrderID: order.ID,
		Total:   payment.Amount,
		Method:  method,
	})

	utils.InfoLogger.Printf("Order %d paid by %s (%.2f via %s)", order.ID, session.UserID, payment.Amount, method)
	return payment, nil
}

// Rate upserts the rating for a served order owned by the caller.
// Re-rating overwrites rather than duplicating.
func (svc *OrderService) Rate(session models.Session, orderID uint, stars int, comment string) error {
	if session.Role != models.RoleCustomer {
		return ErrForbidden
	}
	if stars < 1 || stars > 5 {
		return errors.Join(ErrInvalidInput, errors.New("rating must be between 1 and 5"))
	}

	unlock := svc.lockOrder(orderID)
	defer unlock()

	order, err := svc.ownedOrder(session, orderID)
	if err != nil {
		return err
	}
	if order.Status != models.StatusServed {
		return ErrNotReady
	}

	now := time.Now()
	rating := models.Rating{
		OrderID:   order.ID,
		Stars:     stars,
		Comment:   comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := withRetry(func() error { return svc.DB.Save(&rating).Error }); err != nil {
		return err
	}

	svc.Hub.Publish(live.Event{
		Type:    live.EventRating,
		OrderID: order.ID,
		Rating:  stars,
	})
	return nil
}

// ownedOrder fetches the order and hides other customers' orders behind
// NotFound rather than Forbidden.
func (svc *OrderService) ownedOrder(session models.Session, orderID uint) (models.Order, error) {
	var order models.Order
	if err := svc.DB.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, errors.Join(ErrUnavailable, err)
	}
	if order.UserID != session.UserID {
		return models.Order{}, ErrNotFound
	}
	return order, nil
}
