package jobqueue

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/AndesHost/ServiPanel/app/models"
	"github.com/AndesHost/ServiPanel/app/repository"
	"github.com/AndesHost/ServiPanel/internal/pkg/alerts"
	"github.com/AndesHost/ServiPanel/internal/pkg/mail"
)

// AlertProcessor walks billable services, evaluates their alert phase and
// queues notification emails. It records every sent alert so a phase fires
// at most once per service and expiration date.
type AlertProcessor struct {
	repos *repository.Repositories
	queue *Queue
}

// NewAlertProcessor creates an alert processor over the given repositories
func NewAlertProcessor(repos *repository.Repositories, queue *Queue) *AlertProcessor {
	return &AlertProcessor{repos: repos, queue: queue}
}

// processAlertScanJob runs an expiration alert scan
func (q *Queue) processAlertScanJob(ctx context.Context, job *Job) error {
	if q.alertProcessor == nil {
		return fmt.Errorf("alert processor not configured")
	}

	payload, err := AlertScanJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid alert scan payload: %w", err)
	}

	return q.alertProcessor.Scan(ctx, payload.ServiceID)
}

// processSendEmailJob delivers a single rendered email
func (q *Queue) processSendEmailJob(job *Job) error {
	payload, err := SendEmailJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid send email payload: %w", err)
	}
	return mail.SendMail(payload.To, payload.Subject, payload.Body)
}

// Scan evaluates alerts for one service (serviceID > 0) or all billable
// services. Per-service failures are logged and skipped so one broken row
// cannot stall the whole pass.
func (p *AlertProcessor) Scan(ctx context.Context, serviceID uint) error {
	cfg, err := p.repos.Setting.GetAlertSettings()
	if err != nil {
		return fmt.Errorf("failed to load alert settings: %w", err)
	}

	var services []models.Service
	if serviceID > 0 {
		svc, err := p.repos.Service.GetByID(serviceID)
		if err != nil {
			return fmt.Errorf("failed to load service %d: %w", serviceID, err)
		}
		services = []models.Service{*svc}
	} else {
		services, err = p.repos.Service.ListBillable()
		if err != nil {
			return fmt.Errorf("failed to list billable services: %w", err)
		}
	}

	now := time.Now()
	fired := 0
	for i := range services {
		svc := &services[i]
		sent, err := p.evaluateService(svc, cfg, now)
		if err != nil {
			log.Errorf("[AlertScan] Service %d: %v", svc.ID, err)
			continue
		}
		if sent {
			fired++
		}
	}

	log.Infof("[AlertScan] Scanned %d services, %d alerts fired", len(services), fired)
	return nil
}

// evaluateService checks one service and queues its notifications. Returns
// whether an alert fired.
func (p *AlertProcessor) evaluateService(svc *models.Service, cfg *models.AlertSettings, now time.Time) (bool, error) {
	firing := alerts.Evaluate(svc, &svc.Client, cfg, now)
	if firing == nil {
		return false, nil
	}

	sent, err := p.repos.NotificationLog.WasSent(svc.ID, string(firing.Phase), firing.ExpirationDate)
	if err != nil {
		return false, fmt.Errorf("dedupe lookup failed: %w", err)
	}
	if sent {
		return false, nil
	}

	phaseCfg := cfg.Phase(string(firing.Phase))
	if phaseCfg == nil {
		return false, fmt.Errorf("no settings for phase %s", firing.Phase)
	}

	if err := p.notifyClient(svc, phaseCfg, firing); err != nil {
		return false, err
	}
	if phaseCfg.NotifyAdmins {
		if err := p.notifyAdmins(phaseCfg, firing); err != nil {
			// Client notification already queued; log and keep the dedupe
			// record so the phase does not repeat.
			log.Errorf("[AlertScan] Service %d: admin notify failed: %v", svc.ID, err)
		}
	}

	entry := &models.NotificationLog{
		ServiceID:      svc.ID,
		Phase:          string(firing.Phase),
		ExpirationDate: firing.ExpirationDate.UTC().Truncate(24 * time.Hour),
		Recipient:      svc.Client.Email,
		SentAt:         now,
	}
	if err := p.repos.NotificationLog.Create(entry); err != nil {
		return false, fmt.Errorf("failed to record notification: %w", err)
	}
	return true, nil
}

func (p *AlertProcessor) notifyClient(svc *models.Service, phaseCfg *models.AlertPhaseSettings, firing *alerts.Firing) error {
	if svc.Client.Email == "" {
		return fmt.Errorf("client %d has no email", svc.ClientID)
	}
	return p.queueTemplatedEmail(phaseCfg.ClientTemplateKey, svc.Client.Email, firing.Vars)
}

func (p *AlertProcessor) notifyAdmins(phaseCfg *models.AlertPhaseSettings, firing *alerts.Firing) error {
	admins, err := p.repos.User.GetActiveByIDs(phaseCfg.AdminUserIDs)
	if err != nil {
		return fmt.Errorf("failed to resolve admin recipients: %w", err)
	}
	for _, admin := range admins {
		if err := p.queueTemplatedEmail(phaseCfg.AdminTemplateKey, admin.Email, firing.Vars); err != nil {
			return err
		}
	}
	return nil
}

func (p *AlertProcessor) queueTemplatedEmail(templateKey, to string, vars map[string]string) error {
	template, err := p.repos.EmailTemplate.GetByKey(templateKey)
	if err != nil {
		return fmt.Errorf("failed to load template %s: %w", templateKey, err)
	}

	payload := SendEmailJobPayload{
		To:      to,
		Subject: alerts.Render(template.Subject, vars),
		Body:    alerts.Render(template.Body, vars),
	}
	_, err = p.queue.EnqueueJob(JobTypeSendEmail, payload.ToMap())
	return err
}
