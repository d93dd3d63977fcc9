// Package client talks to the learn API over HTTP and implements
// learning.Remote and learning.QuizGrader.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/singleflight"

	"learnpath/learning"
)

// envelope mirrors middleware.JsonResponse.
type envelope[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// StatusError is a non-success response from the learn API.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("learn api: status %d", e.Code)
	}
	return fmt.Sprintf("learn api: status %d: %s", e.Code, e.Message)
}

func (e *StatusError) HTTPStatusCode() int { return e.Code }

type API struct {
	http    *resty.Client
	lessons singleflight.Group
}

// New returns a client for the learn API at baseURL authenticating with a
// bearer token.
func New(baseURL, token string) *API {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second)
	if token != "" {
		c.SetAuthToken(token)
	}
	return &API{http: c}
}

func (a *API) FetchEnrollment(ctx context.Context, courseSlug string) (*learning.Enrollment, error) {
	var out envelope[learning.Enrollment]
	resp, err := a.http.R().
		SetContext(ctx).
		SetPathParam("slug", courseSlug).
		SetResult(&out).
		Get("/learn/{slug}/enrollment")
	if err := check(resp, err); err != nil {
		return nil, fmt.Errorf("fetch enrollment %q: %w", courseSlug, err)
	}
	return &out.Data, nil
}

// FetchLessonDetail collapses concurrent requests for the same lesson into
// one round trip. The shared request ignores the cancellation of any single
// caller; each caller stops waiting when its own ctx is done.
func (a *API) FetchLessonDetail(ctx context.Context, moduleID, lessonID uint) (*learning.LessonDetail, error) {
	key := fmt.Sprintf("%d/%d", moduleID, lessonID)
	shared := context.WithoutCancel(ctx)
	ch := a.lessons.DoChan(key, func() (interface{}, error) {
		var out envelope[learning.LessonDetail]
		resp, err := a.http.R().
			SetContext(shared).
			SetPathParams(map[string]string{
				"module": strconv.FormatUint(uint64(moduleID), 10),
				"lesson": strconv.FormatUint(uint64(lessonID), 10),
			}).
			SetResult(&out).
			Get("/learn/module/{module}/lesson/{lesson}")
		if err := check(resp, err); err != nil {
			return nil, err
		}
		return &out.Data, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("fetch lesson %d: %w", lessonID, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("fetch lesson %d: %w", lessonID, res.Err)
		}
		detail := *res.Val.(*learning.LessonDetail)
		return &detail, nil
	}
}

func (a *API) MarkLessonCompleted(ctx context.Context, lessonID, enrollmentID uint) error {
	resp, err := a.http.R().
		SetContext(ctx).
		SetPathParam("lesson", strconv.FormatUint(uint64(lessonID), 10)).
		SetBody(map[string]uint{"enrollment_id": enrollmentID}).
		Post("/learn/lesson/{lesson}/complete")
	if err := check(resp, err); err != nil {
		return fmt.Errorf("toggle completion of lesson %d: %w", lessonID, err)
	}
	return nil
}

func (a *API) SubmitQuiz(ctx context.Context, lessonID, enrollmentID uint, answers map[uint]uint) (*learning.QuizResult, error) {
	var out envelope[learning.QuizResult]
	resp, err := a.http.R().
		SetContext(ctx).
		SetPathParam("lesson", strconv.FormatUint(uint64(lessonID), 10)).
		SetBody(struct {
			EnrollmentID uint          `json:"enrollment_id"`
			Answers      map[uint]uint `json:"answers"`
		}{enrollmentID, answers}).
		SetResult(&out).
		Post("/learn/lesson/{lesson}/quiz/submit")
	if err := check(resp, err); err != nil {
		return nil, fmt.Errorf("submit quiz for lesson %d: %w", lessonID, err)
	}
	return &out.Data, nil
}

// check maps transport failures and non-2xx responses to errors; 404 becomes
// learning.ErrNotFound.
func check(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.IsSuccess() {
		return nil
	}
	statusErr := &StatusError{Code: resp.StatusCode(), Message: resp.Status()}
	var body envelope[any]
	if jsonErr := json.Unmarshal(resp.Body(), &body); jsonErr == nil && body.Message != "" {
		statusErr.Message = body.Message
	}
	if resp.StatusCode() == http.StatusNotFound {
		return errors.Join(learning.ErrNotFound, statusErr)
	}
	return statusErr
}
