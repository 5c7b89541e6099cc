// internal/app/poller.go
package app

import (
	"context"
	"errors"
	"time"

	"homework_status_bot/internal/domain/homework"
	"homework_status_bot/internal/domain/notification"
	"homework_status_bot/internal/infra/practicum"

	"github.com/sirupsen/logrus"
)

// failurePrefix starts every failure report sent to the chat.
const failurePrefix = "Сбой в работе программы: "

// HomeworkAPI fetches the raw homework statuses answer.
type HomeworkAPI interface {
	GetAPIAnswer(ctx context.Context, cursor int64) (any, error)
}

// Sender delivers a message to the destination chat.
type Sender interface {
	Send(ctx context.Context, entry *notification.Entry) error
}

// Waiter blocks until the next cycle is due.
type Waiter interface {
	Wait(ctx context.Context, from time.Time) error
}

// Poller runs the poll-diff-notify loop. It owns the status table, the
// cursor and the last reported failure; none of it survives a restart.
// A Poller must be driven by a single goroutine.
type Poller struct {
	api    HomeworkAPI
	sender Sender
	waiter Waiter
	logger *logrus.Entry
	now    func() time.Time

	table       *homework.StatusTable
	cursor      int64
	lastFailure string
}

func NewPoller(api HomeworkAPI, sender Sender, waiter Waiter, table *homework.StatusTable, cursor int64, logger *logrus.Entry) *Poller {
	return &Poller{
		api:    api,
		sender: sender,
		waiter: waiter,
		logger: logger,
		now:    time.Now,
		table:  table,
		cursor: cursor,
	}
}

// Cursor returns the from_date used by the next request.
func (p *Poller) Cursor() int64 { return p.cursor }

// Run repeats cycles until ctx is cancelled and returns ctx.Err().
func (p *Poller) Run(ctx context.Context) error {
	p.logger.WithField("cursor", p.cursor).Info("Polling started")
	for {
		p.RunCycle(ctx)
		if err := p.waiter.Wait(ctx, p.now()); err != nil {
			p.logger.WithError(err).Info("Polling stopped")
			return err
		}
	}
}

// RunCycle performs one cycle and absorbs its failure: the error is logged
// and, unless it is a delivery failure or a repeat of the previous one,
// reported to the chat. A successful cycle clears the remembered failure,
// so the same failure is reported again if it returns after a recovery.
func (p *Poller) RunCycle(ctx context.Context) {
	err := p.Poll(ctx)
	if err == nil {
		p.lastFailure = ""
		return
	}
	if ctx.Err() != nil {
		p.logger.WithError(err).Debug("Cycle interrupted by shutdown")
		return
	}
	p.handleFailure(ctx, err)
}

// Poll fetches, validates and diffs one answer, sending a message for every
// status transition. The cursor only moves when the whole answer was handled.
func (p *Poller) Poll(ctx context.Context) error {
	log := p.logger.WithField("cursor", p.cursor)

	answer, err := p.api.GetAPIAnswer(ctx, p.cursor)
	if err != nil {
		return err
	}
	resp, err := CheckResponse(answer)
	if err != nil {
		return err
	}
	if len(resp.Homeworks) == 0 {
		log.Debug("No new homework statuses")
	}

	for _, item := range resp.Homeworks {
		message, changed, err := homework.ParseStatus(p.table, item)
		if err != nil {
			return err
		}
		itemLog := log.WithFields(logrus.Fields{
			"homework": item.Name,
			"status":   item.Status,
		})
		if !changed {
			itemLog.Debug("Homework status unchanged")
			continue
		}
		itemLog.Debug(message)
		err = p.sender.Send(ctx, &notification.Entry{
			Kind:         notification.KindTransition,
			HomeworkName: item.Name,
			Status:       string(item.Status),
			Text:         message,
		})
		if err != nil {
			return err
		}
		itemLog.Info("Status change delivered")
	}

	p.advance(resp, log)
	return nil
}

func (p *Poller) advance(resp *Response, log *logrus.Entry) {
	if !resp.HasCurrentDate {
		log.Warn("current_date is not an integer, cursor left unchanged")
		return
	}
	if resp.CurrentDate < p.cursor {
		log.WithField("current_date", resp.CurrentDate).Warn("current_date is behind the cursor, cursor left unchanged")
		return
	}
	p.cursor = resp.CurrentDate
}

func (p *Poller) handleFailure(ctx context.Context, err error) {
	kind := classify(err)
	log := p.logger.WithError(err).WithField("failure", kind)

	if kind == failureDelivery {
		log.Error("Failed to deliver message")
		return
	}

	message := failurePrefix + err.Error()
	log.Error("Cycle failed")
	if message == p.lastFailure {
		log.Debug("Same failure already reported, not sending again")
		return
	}

	sendErr := p.sender.Send(ctx, &notification.Entry{Kind: notification.KindFailure, Text: message})
	if sendErr != nil {
		p.logger.WithError(sendErr).Error("Failed to report failure to chat")
		return
	}
	p.lastFailure = message
}

type failureKind string

const (
	failureAPI        failureKind = "api_request"
	failureValidation failureKind = "validation"
	failureStatus     failureKind = "homework_status"
	failureDelivery   failureKind = "delivery"
	failureUnexpected failureKind = "unexpected"
)

func classify(err error) failureKind {
	var (
		apiErr        *practicum.APIRequestError
		validationErr *ValidationError
		statusErr     *homework.StatusError
		sendErr       *MessageSendError
	)
	switch {
	case errors.As(err, &sendErr):
		return failureDelivery
	case errors.As(err, &apiErr):
		return failureAPI
	case errors.As(err, &validationErr):
		return failureValidation
	case errors.As(err, &statusErr), errors.Is(err, homework.ErrMissingHomeworkName):
		return failureStatus
	default:
		return failureUnexpected
	}
}
