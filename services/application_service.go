package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"fastcard/database"
	"fastcard/models"
	"fastcard/utils"

	"github.com/nyaruka/phonenumbers"
	"go.uber.org/zap"
)

// ApplicationNotifier сообщает администраторам о новой заявке
type ApplicationNotifier interface {
	SendApplication(ctx context.Context, fullName, phoneNumber, username string) error
}

// CreateApplicationRequest заявка на визитку
type CreateApplicationRequest struct {
	FullName    string  `json:"full_name"`
	PhoneNumber *string `json:"phone_number"`
	HTML        string  `json:"html"`
	CSS         string  `json:"css"`
}

// ApplicationService предоставляет методы для работы с заявками
type ApplicationService struct {
	db       *database.Database
	notifier ApplicationNotifier
	region   string
}

// NewApplicationService создает сервис заявок; region используется для номеров без кода страны
func NewApplicationService(db *database.Database, notifier ApplicationNotifier, region string) *ApplicationService {
	return &ApplicationService{
		db:       db,
		notifier: notifier,
		region:   region,
	}
}

// Create сохраняет заявку вместе с черновиком визитки и уведомляет администраторов
func (s *ApplicationService) Create(ctx context.Context, requester *Claims, req CreateApplicationRequest) (view *ApplicationView, err error) {
	start := time.Now()
	defer func() {
		utils.GetMetrics().RecordOperation(utils.OpApplicationSubmit, err)
		utils.LogOperation(utils.OpApplicationSubmit, start, err)
	}()

	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" || utf8.RuneCountInString(fullName) > 100 {
		return nil, NewBadRequest("Full name is required")
	}

	phone, err := s.normalizePhone(req.PhoneNumber)
	if err != nil {
		return nil, err
	}

	if _, err := s.db.GetApplicationByUserID(ctx, requester.ID); err == nil {
		return nil, ErrApplicationExists
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, internalError("application.create.lookup", err)
	}

	application := &models.Application{
		UserID:      requester.ID,
		FullName:    fullName,
		PhoneNumber: phone,
		HTML:        req.HTML,
		CSS:         req.CSS,
	}
	card, err := s.db.CreateApplicationWithCard(ctx, application)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrApplicationExists
		}
		return nil, internalError("application.create", err)
	}
	utils.GetMetrics().RecordOperation(utils.OpCardCreate, nil)

	var phoneText string
	if phone != nil {
		phoneText = *phone
	}
	if err := s.notifier.SendApplication(ctx, fullName, phoneText, requester.Username); err != nil {
		utils.Log.Warn("не удалось уведомить администраторов о заявке",
			zap.Uint("application_id", application.ID),
			zap.Error(err),
		)
	}

	utils.Log.Info("Application submitted",
		zap.Uint("application_id", application.ID),
		zap.Uint("card_id", card.ID),
		zap.Uint("user_id", requester.ID),
	)
	return newApplicationView(application), nil
}

// Delete удаляет заявку владельцем или администратором
func (s *ApplicationService) Delete(ctx context.Context, requester *Claims, id uint) (err error) {
	defer func() {
		utils.GetMetrics().RecordOperation(utils.OpApplicationDelete, err)
	}()

	application, err := s.db.GetApplicationByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return ErrApplicationNotFound
	}
	if err != nil {
		return internalError("application.delete.get", err)
	}
	if !requester.CanManage(application.UserID) {
		return ErrPermissionDenied
	}

	if err := s.db.DeleteApplication(ctx, application.ID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrApplicationNotFound
		}
		return internalError("application.delete", err)
	}

	utils.Log.Info("Application deleted", zap.Uint("application_id", id), zap.Uint("by", requester.ID))
	return nil
}

// List возвращает все заявки
func (s *ApplicationService) List(ctx context.Context) ([]ApplicationView, error) {
	applications, err := s.db.ListApplications(ctx)
	if err != nil {
		return nil, internalError("application.list", err)
	}

	views := make([]ApplicationView, 0, len(applications))
	for i := range applications {
		views = append(views, *newApplicationView(&applications[i]))
	}
	return views, nil
}

// normalizePhone приводит номер к формату E.164. Пустой номер допустим
func (s *ApplicationService) normalizePhone(raw *string) (*string, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}

	number, err := phonenumbers.Parse(strings.TrimSpace(*raw), s.region)
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return nil, ErrInvalidPhoneNumber
	}

	formatted := phonenumbers.Format(number, phonenumbers.E164)
	return &formatted, nil
}
