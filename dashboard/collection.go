// Package dashboard holds the typed clients for the domain resources the
// admin screens manage. The auth core treats all of these endpoints as
// opaque; they reach the API through the gateway-wired client, which handles
// tokens and 401s uniformly.
package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/MTN-Developers/mtn-academy-dashboard/internal/apierrors"
)

type Collection struct {
	baseURL string
	client  *http.Client
}

// NewCollection builds the resource client set over the gateway-wired HTTP
// client.
func NewCollection(baseURL string, client *http.Client) (*Collection, error) {
	if client == nil {
		return nil, errors.New("[NewCollection] http client is required")
	}
	return &Collection{baseURL: baseURL, client: client}, nil
}

// Semesters

func (c *Collection) ListSemesters(ctx context.Context) ([]Semester, error) {
	return list[Semester](ctx, c, "/semesters", nil)
}

func (c *Collection) CreateSemester(ctx context.Context, s Semester) (*Semester, error) {
	return create(ctx, c, "/semesters", s)
}

// Courses

func (c *Collection) ListCoursesBySemester(ctx context.Context, semesterID string) ([]Course, error) {
	return list[Course](ctx, c, "/course/semester/"+url.PathEscape(semesterID), nil)
}

func (c *Collection) GetCourseBySlug(ctx context.Context, slug string) (*Course, error) {
	return get[Course](ctx, c, "/course/slug/"+url.PathEscape(slug))
}

func (c *Collection) CreateCourse(ctx context.Context, course Course) (*Course, error) {
	return create(ctx, c, "/course", course)
}

func (c *Collection) UpdateCourse(ctx context.Context, id string, course Course) (*Course, error) {
	return send[Course](ctx, c, http.MethodPut, "/course/"+url.PathEscape(id), course)
}

// Chapters

func (c *Collection) ListChaptersByCourse(ctx context.Context, courseID, chapterType string) ([]Chapter, error) {
	q := url.Values{}
	if chapterType != "" {
		q.Set("chapterType", chapterType)
	}
	return list[Chapter](ctx, c, "/chapter/course/"+url.PathEscape(courseID), q)
}

func (c *Collection) CreateChapter(ctx context.Context, chapter Chapter) (*Chapter, error) {
	return create(ctx, c, "/chapter", chapter)
}

// Videos

func (c *Collection) GetVideo(ctx context.Context, id string) (*Video, error) {
	return get[Video](ctx, c, "/video/"+url.PathEscape(id))
}

func (c *Collection) CreateVideo(ctx context.Context, video Video) (*Video, error) {
	return create(ctx, c, "/video", video)
}

func (c *Collection) UpdateVideo(ctx context.Context, id string, video Video) (*Video, error) {
	return send[Video](ctx, c, http.MethodPatch, "/video/"+url.PathEscape(id), video)
}

func (c *Collection) DeleteVideo(ctx context.Context, id string) error {
	_, err := send[struct{}](ctx, c, http.MethodDelete, "/video/"+url.PathEscape(id), nil)
	return err
}

// Materials

func (c *Collection) ListMaterialsByCourse(ctx context.Context, courseID string) ([]Material, error) {
	return list[Material](ctx, c, "/course-material/course/"+url.PathEscape(courseID), nil)
}

func (c *Collection) CreateMaterial(ctx context.Context, material Material) (*Material, error) {
	return create(ctx, c, "/course-material", material)
}

// Users

func (c *Collection) ListUsers(ctx context.Context, params ListParams) (*Page[User], error) {
	return listPage[User](ctx, c, "/user", params)
}

func (c *Collection) UpdateUser(ctx context.Context, id string, fields map[string]any) (*User, error) {
	return send[User](ctx, c, http.MethodPatch, "/user/"+url.PathEscape(id), fields)
}

// Events (the events page is read-only apart from creation)

func (c *Collection) ListEvents(ctx context.Context, params ListParams) (*Page[Event], error) {
	return listPage[Event](ctx, c, "/events", params)
}

func (c *Collection) CreateEvent(ctx context.Context, event Event) (*Event, error) {
	return create(ctx, c, "/events", event)
}

// Course requests (list and status updates only, mirroring the screen)

func (c *Collection) ListCourseRequests(ctx context.Context, params ListParams) (*Page[CourseRequest], error) {
	return listPage[CourseRequest](ctx, c, "/course-request", params)
}

func (c *Collection) UpdateCourseRequest(ctx context.Context, id string, fields map[string]any) (*CourseRequest, error) {
	return send[CourseRequest](ctx, c, http.MethodPatch, "/course-request/"+url.PathEscape(id), fields)
}

// Shared plumbing. Every response arrives in the {data, status, message}
// envelope; paginated listings nest a second data/meta layer inside it.

type envelope[T any] struct {
	Data    T      `json:"data"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func list[T any](ctx context.Context, c *Collection, path string, query url.Values) ([]T, error) {
	var out []T
	if err := c.doJSON(ctx, http.MethodGet, withQuery(path, query), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func listPage[T any](ctx context.Context, c *Collection, path string, params ListParams) (*Page[T], error) {
	q := url.Values{}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	if params.Status != "" {
		q.Set("status", params.Status)
	}
	var out Page[T]
	if err := c.doJSON(ctx, http.MethodGet, withQuery(path, q), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func get[T any](ctx context.Context, c *Collection, path string) (*T, error) {
	var out T
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func create[T any](ctx context.Context, c *Collection, path string, body T) (*T, error) {
	return send[T](ctx, c, http.MethodPost, path, body)
}

func send[T any](ctx context.Context, c *Collection, method, path string, body any) (*T, error) {
	var out T
	if err := c.doJSON(ctx, method, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func withQuery(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}

func (c *Collection) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "[Collection.doJSON] Marshal")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "[Collection.doJSON] NewRequest")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "[Collection.doJSON] Do")
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Wrap(apierrors.ErrUnexpectedStatus, fmt.Sprintf("[Collection.doJSON] %s %s: %s", method, path, resp.Status))
	}

	var wrapper envelope[json.RawMessage]
	if err := json.NewDecoder(resp.Body).Decode(&wrapper); err != nil {
		return errors.Wrap(err, "[Collection.doJSON] Decode envelope")
	}
	if len(wrapper.Data) == 0 || out == nil {
		return nil
	}
	if err := json.Unmarshal(wrapper.Data, out); err != nil {
		return errors.Wrap(err, "[Collection.doJSON] Decode data")
	}
	return nil
}
