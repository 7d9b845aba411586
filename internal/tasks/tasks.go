package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"log"

	"github.com/hibiken/asynq"
	"github.com/nfnt/resize"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"goldenview/realty/internal/config"
	"goldenview/realty/internal/email"
	"goldenview/realty/internal/models"
	"goldenview/realty/internal/services"
	"goldenview/realty/internal/storage"
)

// Task types.
const (
	TypePropertyViewed    = "property:viewed"
	TypeImageProcess      = "image:process"
	TypeAppointmentNotify = "appointment:notify"
)

// Queue names.
const (
	QueueImages  = "images"
	QueueDefault = "default"
	QueueLow     = "low"
)

// PropertyViewedPayload identifies the property whose page was opened.
type PropertyViewedPayload struct {
	PropertyID string `json:"property_id"`
}

// ImageTaskPayload points at an uploaded image awaiting normalization.
type ImageTaskPayload struct {
	S3Key      string `json:"s3_key"`
	PropertyID string `json:"property_id"`
	Caption    string `json:"caption,omitempty"`
	Room       string `json:"room,omitempty"`
	IsPrimary  bool   `json:"is_primary,omitempty"`
}

// AppointmentNotifyPayload carries the appointment as it was when the client
// notification was triggered.
type AppointmentNotifyPayload struct {
	Appointment models.Appointment `json:"appointment"`
}

// NewPropertyViewedTask builds a view counter task.
func NewPropertyViewedTask(propertyID primitive.ObjectID) (*asynq.Task, error) {
	payload, err := json.Marshal(PropertyViewedPayload{PropertyID: propertyID.Hex()})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePropertyViewed, payload, asynq.Queue(QueueLow), asynq.MaxRetry(3)), nil
}

// NewImageProcessTask builds an image normalization task.
func NewImageProcessTask(p ImageTaskPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeImageProcess, payload, asynq.Queue(QueueImages)), nil
}

// NewAppointmentNotifyTask builds a client notification task.
func NewAppointmentNotifyTask(a models.Appointment) (*asynq.Task, error) {
	payload, err := json.Marshal(AppointmentNotifyPayload{Appointment: a})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeAppointmentNotify, payload, asynq.Queue(QueueDefault), asynq.MaxRetry(5)), nil
}

func redisOpt(rdb *redis.Client) asynq.RedisClientOpt {
	opts := rdb.Options()
	return asynq.RedisClientOpt{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}
}

// NewClient returns an asynq client sharing the connection settings of rdb.
func NewClient(rdb *redis.Client) *asynq.Client {
	return asynq.NewClient(redisOpt(rdb))
}

// PropertyUpdater is the part of the property service the task handlers need.
type PropertyUpdater interface {
	IncrementViewCount(ctx context.Context, id primitive.ObjectID) error
	AddImage(ctx context.Context, caller services.Caller, id primitive.ObjectID, img models.Image) (*models.Property, error)
}

// TaskProcessor handles the processing of tasks.
type TaskProcessor struct {
	cfg        *config.Config
	storage    storage.IS3Storage
	properties PropertyUpdater
	mailer     email.Sender
}

func NewTaskProcessor(cfg *config.Config, storageService storage.IS3Storage, properties PropertyUpdater, mailer email.Sender) *TaskProcessor {
	return &TaskProcessor{cfg: cfg, storage: storageService, properties: properties, mailer: mailer}
}

// NewServeMux registers every task handler.
func NewServeMux(p *TaskProcessor) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypePropertyViewed, p.HandlePropertyViewedTask)
	mux.HandleFunc(TypeImageProcess, p.HandleImageProcessTask)
	mux.HandleFunc(TypeAppointmentNotify, p.HandleAppointmentNotifyTask)
	return mux
}

// NewServer configures an asynq server. The caller starts it with a mux from NewServeMux.
func NewServer(rdb *redis.Client, concurrency int) *asynq.Server {
	return asynq.NewServer(
		redisOpt(rdb),
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				QueueImages:  5,
				QueueDefault: 3,
				QueueLow:     1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Printf("[Asynq Error] Task Type: %s, Payload: %s, Error: %v", task.Type(), string(task.Payload()), err)
			}),
		},
	)
}

// HandlePropertyViewedTask increments a property's view counter.
func (p *TaskProcessor) HandlePropertyViewedTask(ctx context.Context, t *asynq.Task) error {
	var payload PropertyViewedPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal property viewed payload: %v: %w", err, asynq.SkipRetry)
	}
	id, err := primitive.ObjectIDFromHex(payload.PropertyID)
	if err != nil {
		return fmt.Errorf("invalid property ID %q in payload: %w", payload.PropertyID, asynq.SkipRetry)
	}

	if err := p.properties.IncrementViewCount(ctx, id); err != nil {
		if errors.Is(err, services.ErrPropertyNotFound) {
			return fmt.Errorf("property %s no longer exists: %w", payload.PropertyID, asynq.SkipRetry)
		}
		return err
	}
	return nil
}

// HandleImageProcessTask shrinks an uploaded image to the configured maximum
// dimension, writes it back under the same key and attaches it to the property.
func (p *TaskProcessor) HandleImageProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload ImageTaskPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal image task payload: %v: %w", err, asynq.SkipRetry)
	}
	propertyID, err := primitive.ObjectIDFromHex(payload.PropertyID)
	if err != nil {
		return fmt.Errorf("invalid property ID %q in payload: %w", payload.PropertyID, asynq.SkipRetry)
	}

	if p.storage == nil {
		return fmt.Errorf("image storage is not configured: %w", asynq.SkipRetry)
	}

	log.Printf("Processing image task: S3Key=%s, PropertyID=%s", payload.S3Key, payload.PropertyID)

	maxSizeBytes := int64(p.cfg.ImageMaxSizeMB) * 1024 * 1024
	data, contentType, err := p.storage.GetObject(ctx, payload.S3Key, maxSizeBytes)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) || errors.Is(err, storage.ErrObjectTooLarge) {
			log.Printf("Skipping image %s: %v", payload.S3Key, err)
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		return err
	}

	processed, processedType, resized, err := ProcessImage(data, p.cfg.ImageMaxDimension)
	if err != nil {
		log.Printf("Error decoding image for key %s: %v", payload.S3Key, err)
		return fmt.Errorf("unsupported image format or corrupt image: %w", asynq.SkipRetry)
	}
	if resized {
		if int64(len(processed)) > maxSizeBytes {
			return fmt.Errorf("resized image %s still exceeds max size: %w", payload.S3Key, asynq.SkipRetry)
		}
		if err := p.storage.PutObject(ctx, payload.S3Key, processed, processedType); err != nil {
			return err
		}
		contentType = processedType
	}
	log.Printf("Image %s ready (%s, resized=%t)", payload.S3Key, contentType, resized)

	img := models.Image{
		URL:       p.storage.PublicURL(payload.S3Key),
		Caption:   payload.Caption,
		Room:      payload.Room,
		IsPrimary: payload.IsPrimary,
	}
	if _, err := p.properties.AddImage(ctx, services.SystemCaller, propertyID, img); err != nil {
		if errors.Is(err, services.ErrPropertyNotFound) {
			return fmt.Errorf("property %s no longer exists: %w", payload.PropertyID, asynq.SkipRetry)
		}
		log.Printf("Error adding image %s to property %s: %v", payload.S3Key, payload.PropertyID, err)
		return fmt.Errorf("failed to update property with processed image: %w", err)
	}

	log.Printf("Image task processed successfully: Key=%s, PropertyID=%s", payload.S3Key, payload.PropertyID)
	return nil
}

// HandleAppointmentNotifyTask emails the client about their appointment.
func (p *TaskProcessor) HandleAppointmentNotifyTask(ctx context.Context, t *asynq.Task) error {
	var payload AppointmentNotifyPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal appointment notify payload: %v: %w", err, asynq.SkipRetry)
	}
	if p.mailer == nil {
		return fmt.Errorf("no email sender configured: %w", asynq.SkipRetry)
	}

	msg, err := email.AppointmentMessage(p.cfg.AppName, payload.Appointment)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if err := p.mailer.Send(ctx, msg); err != nil {
		log.Printf("Error sending %s email for appointment %s: %v", msg.Kind, payload.Appointment.ID.Hex(), err)
		return err
	}
	return nil
}

// ProcessImage decodes data and, when either side exceeds maxDimension,
// returns a JPEG thumbnail bounded by maxDimension. Images already within
// bounds are returned unchanged with resized false.
func ProcessImage(data []byte, maxDimension int) ([]byte, string, bool, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", false, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	if maxDimension <= 0 || (bounds.Dx() <= maxDimension && bounds.Dy() <= maxDimension) {
		return data, "image/" + format, false, nil
	}

	thumb := resize.Thumbnail(uint(maxDimension), uint(maxDimension), img, resize.Lanczos3)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 85}); err != nil {
		return nil, "", false, fmt.Errorf("encode resized image: %w", err)
	}
	return buf.Bytes(), "image/jpeg", true, nil
}
