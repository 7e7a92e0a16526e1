package services

import (
	"fmt"
	"log"

	"teknikservis-backend/models"

	"gorm.io/gorm"
)

// NotificationService records admin-facing events. Writes are best-effort:
// a failed insert is logged and never fails the triggering operation.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) create(n *models.Notification) {
	if err := s.db.Create(n).Error; err != nil {
		log.Printf("Failed to create notification %q: %v", n.Type, err)
	}
}

func (s *NotificationService) NotifyNewRepair(repair *models.Repair) {
	s.create(&models.Notification{
		Type:         models.NotifNewRepair,
		Title:        "Yeni servis kaydı",
		Message:      fmt.Sprintf("%s için yeni servis kaydı oluşturuldu: %s %s", repair.CustomerName, repair.Brand, repair.DeviceType),
		RelatedID:    &repair.ID,
		RepairID:     &repair.ID,
		CustomerName: repair.CustomerName,
		DeviceInfo:   fmt.Sprintf("%s %s %s", repair.Brand, repair.Model, repair.DeviceType),
	})
}

func (s *NotificationService) NotifyStatusUpdate(repair *models.Repair, newStatus string) {
	s.create(&models.Notification{
		Type:         models.NotifRepairStatusUpdate,
		Title:        "Servis durumu güncellendi",
		Message:      fmt.Sprintf("%s - %s kaydının durumu %s olarak güncellendi", repair.CustomerName, repair.DeviceType, newStatus),
		RelatedID:    &repair.ID,
		RepairID:     &repair.ID,
		CustomerName: repair.CustomerName,
		DeviceInfo:   fmt.Sprintf("%s %s %s", repair.Brand, repair.Model, repair.DeviceType),
		NewStatus:    newStatus,
	})
}

func (s *NotificationService) NotifyRepairCancelled(repair *models.Repair) {
	s.create(&models.Notification{
		Type:         models.NotifRepairCancelled,
		Title:        "Servis kaydı iptal edildi",
		Message:      fmt.Sprintf("%s - %s kaydı iptal edildi", repair.CustomerName, repair.DeviceType),
		RelatedID:    &repair.ID,
		RepairID:     &repair.ID,
		CustomerName: repair.CustomerName,
		DeviceInfo:   fmt.Sprintf("%s %s %s", repair.Brand, repair.Model, repair.DeviceType),
	})
}

func (s *NotificationService) NotifyNewCustomer(customer *models.Customer) {
	s.create(&models.Notification{
		Type:         models.NotifNewCustomer,
		Title:        "Yeni müşteri",
		Message:      fmt.Sprintf("Yeni müşteri kaydı: %s", customer.FullName),
		RelatedID:    &customer.ID,
		CustomerName: customer.FullName,
	})
}

func (s *NotificationService) NotifyNewUserRegistration(user *models.User) {
	s.create(&models.Notification{
		Type:      models.NotifNewUserRegistration,
		Title:     "Yeni kullanıcı kaydı",
		Message:   fmt.Sprintf("%s (%s) kaydoldu, onay bekliyor", user.FullName, user.Email),
		RelatedID: &user.ID,
	})
}

func (s *NotificationService) NotifyAccountApproved(user *models.User) {
	s.create(&models.Notification{
		Type:      models.NotifAccountApproved,
		Title:     "Hesap onaylandı",
		Message:   fmt.Sprintf("%s (%s) hesabı onaylandı", user.FullName, user.Email),
		RelatedID: &user.ID,
	})
}
