package events

import (
	"context"
	"hospital-service/internal/app/contracts"
	"hospital-service/internal/app/models"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/exceptions"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// AppointmentEventMessage is the JSON body published for every appointment lifecycle change.
type AppointmentEventMessage struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	RequestID     string    `json:"request_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
	AppointmentID string    `json:"appointment_id"`
	PatientID     string    `json:"patient_id"`
	DoctorID      string    `json:"doctor_id"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	PaymentAmount float64   `json:"payment_amount"`
}

func NewAppointmentEventMessage(eventType, requestID string, appointment *models.Appointment) *AppointmentEventMessage {
	return &AppointmentEventMessage{
		ID:            uuid.NewString(),
		Type:          eventType,
		RequestID:     requestID,
		OccurredAt:    time.Now(),
		AppointmentID: appointment.ID.Hex(),
		PatientID:     appointment.PatientID.Hex(),
		DoctorID:      appointment.DoctorID.Hex(),
		Date:          appointment.DateString(),
		Time:          appointment.Time,
		Status:        string(appointment.Status),
		PaymentStatus: string(appointment.PaymentStatus),
		PaymentAmount: appointment.PaymentAmount,
	}
}

type rabbitMQPublisher struct {
	Channel *amqp091.Channel
	Queue   string
	Log     *zap.Logger
	mu      sync.Mutex
}

// NewAppointmentEventPublisher declares the durable events queue. A nil connection yields a no-op publisher.
func NewAppointmentEventPublisher(conn *amqp091.Connection, queue string, logger *zap.Logger) (contracts.AppointmentEventPublisher, error) {
	if conn == nil {
		return &noopPublisher{Log: logger}, nil
	}

	channel, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = channel.QueueDeclare(
		queue, // name
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
	if err != nil {
		return nil, err
	}

	return &rabbitMQPublisher{
		Channel: channel,
		Queue:   queue,
		Log:     logger,
	}, nil
}

func (p *rabbitMQPublisher) Publish(ctx context.Context, eventType string, appointment *models.Appointment) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	p.Log.Info("rabbitMQPublisher.Publish called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventTypeKey, eventType),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID.Hex()),
	)

	body, err := json.Marshal(NewAppointmentEventMessage(eventType, requestID, appointment))
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Type:         eventType,
		Timestamp:    time.Now(),
		Headers: amqp091.Table{
			"message_type": "JSON",
		},
	}

	// amqp channels are not safe for concurrent publishing
	p.mu.Lock()
	err = p.Channel.PublishWithContext(ctx, "", p.Queue, false, false, message)
	p.mu.Unlock()
	if err != nil {
		p.Log.Error("rabbitMQPublisher.Publish error publishing message",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueueKey, p.Queue),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublishMessage(err, p.Queue)
	}

	p.Log.Info("rabbitMQPublisher.Publish succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueKey, p.Queue),
	)
	return nil
}

type noopPublisher struct {
	Log *zap.Logger
}

func (p *noopPublisher) Publish(ctx context.Context, eventType string, appointment *models.Appointment) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	p.Log.Debug("noopPublisher.Publish skipped",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventTypeKey, eventType),
	)
	return nil
}
