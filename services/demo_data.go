package services

import (
	"errors"
	"log"
	"time"

	"teknikservis-backend/models"
	"teknikservis-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DemoDataService seeds the Refsan demo dataset: demo accounts for each
// role, ceramic-industry customers and sample repairs.
type DemoDataService struct {
	db *gorm.DB
}

func NewDemoDataService(db *gorm.DB) *DemoDataService {
	return &DemoDataService{db: db}
}

type DemoDataResult struct {
	UsersCreated     int `json:"users_created"`
	CustomersCreated int `json:"customers_created"`
	RepairsCreated   int `json:"repairs_created"`
}

type demoUser struct {
	Email    string
	Password string
	FullName string
	Role     string
	Phone    string
}

var demoUsers = []demoUser{
	{"admin@demo.com", "admin123", "Admin Kullanıcı", models.RoleAdmin, "05551234567"},
	{"teknisyen@demo.com", "teknisyen123", "Ahmet Teknisyen", models.RoleTechnician, "05551234568"},
	{"musteri@demo.com", "musteri123", "Ayşe Müşteri", models.RoleCustomer, "05551234569"},
}

var demoCustomers = []models.Customer{
	{FullName: "Ege Karo Ltd. Şti.", Email: "info@egekaro.com", Phone: "0274 789 0123", Address: "Kütahya Organize Sanayi Bölgesi, Kütahya"},
	{FullName: "Manisa Seramik A.Ş.", Email: "servis@manisaseramik.com", Phone: "0236 234 5678", Address: "Manisa Akhisar Organize Sanayi, Manisa"},
	{FullName: "Çanakkale Çini Atölyesi", Email: "atolye@canakkalecini.com", Phone: "0286 456 7890", Address: "Çanakkale Merkez, Çanakkale"},
	{FullName: "Bursa Fayans Fabrikası", Email: "teknik@bursafayans.com", Phone: "0224 567 8901", Address: "Bursa İnegöl Organize Sanayi, Bursa"},
	{FullName: "İzmir Porselen San. Tic.", Email: "bakim@izmirporselen.com", Phone: "0232 678 9012", Address: "İzmir Kemalpaşa Organize Sanayi, İzmir"},
}

type demoRepair struct {
	DeviceType  string
	Brand       string
	Model       string
	Description string
	Priority    string
	Status      string
}

var demoRepairs = []demoRepair{
	{"Seramik Fırını", "Refsan", "RF-1200", "Fırın istenen sıcaklığa çıkmıyor, rezistans kontrolü gerekli", models.PriorityHigh, models.StatusPending},
	{"Çamur Karıştırıcı", "Refsan", "CK-50", "Motor aşırı ısınıyor, rulman değişimi gerekebilir", models.PriorityMedium, models.StatusInProgress},
	{"Sır Püskürtme Kabini", "Refsan", "SP-200", "Fan düşük devirde çalışıyor", models.PriorityLow, models.StatusPending},
	{"Torna Tezgahı", "Refsan", "TT-300", "Devir ayarı tutmuyor, hız kontrol kartı arızalı", models.PriorityUrgent, models.StatusInProgress},
	{"Seramik Presi", "Refsan", "PR-80", "Hidrolik basınç kaybı var", models.PriorityMedium, models.StatusCompleted},
}

// CreateDemoData seeds users idempotently (existing demo accounts are kept)
// and adds customers and repairs. The seeding admin is the creator of the
// demo repairs.
func (s *DemoDataService) CreateDemoData(admin *models.User) (*DemoDataResult, error) {
	result := &DemoDataResult{}

	technicianID := s.seedUsers(result)

	for i, template := range demoCustomers {
		customer := template
		// Alternate ownership so the technician demo account has data.
		if i%2 == 1 && technicianID != nil {
			customer.CreatedByTechnician = technicianID
		}
		if err := s.db.Create(&customer).Error; err != nil {
			log.Printf("Failed to create demo customer %s: %v", customer.FullName, err)
			continue
		}
		result.CustomersCreated++

		sample := demoRepairs[i%len(demoRepairs)]
		repair := models.Repair{
			CustomerID:    customer.ID,
			CustomerName:  customer.FullName,
			CustomerPhone: customer.Phone,
			DeviceType:    sample.DeviceType,
			Brand:         sample.Brand,
			Model:         sample.Model,
			Description:   sample.Description,
			Priority:      sample.Priority,
			Status:        sample.Status,
			PaymentStatus: models.PaymentPending,
			Images:        models.StringList{},
			CreatedBy:     admin.ID,
		}
		if sample.Status == models.StatusCompleted {
			now := time.Now().UTC()
			repair.CompletedAt = &now
		}
		if technicianID != nil && sample.Status == models.StatusInProgress {
			repair.AssignedTechnicianID = technicianID
			repair.AssignedTechnicianName = "Ahmet Teknisyen"
		}
		if err := s.db.Create(&repair).Error; err != nil {
			log.Printf("Failed to create demo repair for %s: %v", customer.FullName, err)
			continue
		}
		result.RepairsCreated++
	}

	return result, nil
}

func (s *DemoDataService) seedUsers(result *DemoDataResult) *uuid.UUID {
	var technicianID *uuid.UUID

	for _, du := range demoUsers {
		var existing models.User
		err := s.db.Where("email = ?", du.Email).First(&existing).Error
		if err == nil {
			if existing.Role == models.RoleTechnician {
				id := existing.ID
				technicianID = &id
			}
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Failed to look up demo user %s: %v", du.Email, err)
			continue
		}

		hashed, err := utils.HashPassword(du.Password)
		if err != nil {
			log.Printf("Failed to hash demo password: %v", err)
			continue
		}
		user := models.User{
			Email:      du.Email,
			Password:   hashed,
			FullName:   du.FullName,
			Phone:      du.Phone,
			Role:       du.Role,
			IsActive:   true,
			IsApproved: true,
		}
		if err := s.db.Create(&user).Error; err != nil {
			log.Printf("Failed to create demo user %s: %v", du.Email, err)
			continue
		}
		if user.Role == models.RoleTechnician {
			id := user.ID
			technicianID = &id
		}
		result.UsersCreated++
	}

	return technicianID
}
