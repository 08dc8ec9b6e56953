package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/okian/crm/internal/adapters/http/api"
	"github.com/okian/crm/internal/adapters/repository"
	"github.com/okian/crm/internal/domain/model"
	"github.com/okian/crm/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

const contactJSON = `{
	"firstname": "Ada",
	"lastname": "Lovelace",
	"mail": "ada@example.com",
	"phone": "+44 20 0000 0000",
	"birthday": "1815-12-10",
	"address": "12 St James's Square",
	"contact_type": 1,
	"origin": 2,
	"gender": 1
}`

// fixture is a server backed by a fresh in-memory database.
type fixture struct {
	store   *repository.GormStore
	handler http.Handler
}

func newFixture() *fixture {
	_ = logger.Init(logger.WithWriter(io.Discard))
	ctx := context.Background()
	store, err := repository.Open(ctx, repository.DriverSQLite, ":memory:")
	So(err, ShouldBeNil)
	So(store.Migrate(ctx), ShouldBeNil)

	server := api.NewServer(store, &mockStatsProvider{stats: map[string]interface{}{"running": true}},
		api.WithRequestTimeout(5*time.Second))
	mux := http.NewServeMux()
	server.Register(ctx, mux)
	return &fixture{store: store, handler: server.Handler(mux)}
}

func (f *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader = http.NoBody
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	return w
}

func (f *fixture) addUser(first, last, mail string) int64 {
	row := repository.UserRow{Firstname: first, Lastname: last, Mail: mail, Password: "secret"}
	So(f.store.DB().Create(&row).Error, ShouldBeNil)
	return row.ID
}

func decodeBody[T any](w *httptest.ResponseRecorder) T {
	var v T
	So(json.Unmarshal(w.Body.Bytes(), &v), ShouldBeNil)
	return v
}

func TestContacts(t *testing.T) {
	Convey("Given a CRM server", t, func() {
		f := newFixture()
		Reset(func() { _ = f.store.Close() })

		Convey("When no contacts exist", func() {
			w := f.do(http.MethodGet, "/contacts/", "")

			Convey("Then the list is an empty array", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(strings.TrimSpace(w.Body.String()), ShouldEqual, "[]")
			})
		})

		Convey("When a contact is created", func() {
			w := f.do(http.MethodPost, "/contacts/", contactJSON)
			So(w.Code, ShouldEqual, http.StatusOK)
			created := decodeBody[model.Contact](w)

			Convey("Then it carries a storage assigned id", func() {
				So(created.ID, ShouldBeGreaterThan, 0)
				So(created.Mail, ShouldEqual, "ada@example.com")
			})

			Convey("And fetching it returns the input plus the id", func() {
				w := f.do(http.MethodGet, "/contact/?contact_id=1", "")
				So(w.Code, ShouldEqual, http.StatusOK)
				got := decodeBody[model.Contact](w)
				So(got.ID, ShouldEqual, created.ID)
				So(got.Firstname, ShouldEqual, "Ada")
				So(got.Birthday.String(), ShouldEqual, "1815-12-10")
				So(*got.ContactType, ShouldEqual, 1)
				So(*got.Origin, ShouldEqual, 2)
			})

			Convey("And the path without trailing slash reaches the same handler", func() {
				w := f.do(http.MethodGet, "/contacts", "")
				So(w.Code, ShouldEqual, http.StatusOK)
				So(decodeBody[[]model.Contact](w), ShouldHaveLength, 1)
			})

			Convey("And updating it overwrites every field", func() {
				upd := `{"id": 1, "firstname": "Augusta", "lastname": "King", "mail": "augusta@example.com",
					"phone": "555", "birthday": "1815-12-11", "address": "Ockham Park",
					"contact_type": 3, "origin": 4, "gender": 2}`
				w := f.do(http.MethodPut, "/contacts/", upd)
				So(w.Code, ShouldEqual, http.StatusOK)
				So(decodeBody[model.Contact](w).Firstname, ShouldEqual, "Augusta")

				got := decodeBody[model.Contact](f.do(http.MethodGet, "/contact/?contact_id=1", ""))
				So(got.Firstname, ShouldEqual, "Augusta")
				So(got.Lastname, ShouldEqual, "King")
				So(got.Mail, ShouldEqual, "augusta@example.com")
				So(got.Phone, ShouldEqual, "555")
				So(got.Birthday.String(), ShouldEqual, "1815-12-11")
				So(got.Address, ShouldEqual, "Ockham Park")
				So(*got.ContactType, ShouldEqual, 3)
				So(*got.Origin, ShouldEqual, 4)
				So(*got.Gender, ShouldEqual, 2)
			})

			Convey("And an update without the lookup references is rejected", func() {
				upd := `{"id": 1, "firstname": "Augusta", "lastname": "King", "mail": "augusta@example.com",
					"phone": "555", "birthday": "1815-12-11", "address": "Ockham Park"}`
				w := f.do(http.MethodPut, "/contacts/", upd)
				So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
				body := decodeBody[errorBody](w)
				So(body.Fields, ShouldContainKey, "contact_type")
				So(body.Fields, ShouldContainKey, "origin")
				So(body.Fields, ShouldContainKey, "gender")

				got := decodeBody[model.Contact](f.do(http.MethodGet, "/contact/?contact_id=1", ""))
				So(got.Firstname, ShouldEqual, "Ada")
				So(*got.ContactType, ShouldEqual, 1)
				So(*got.Origin, ShouldEqual, 2)
				So(*got.Gender, ShouldEqual, 1)
			})

			Convey("And an update with explicit zero references is accepted", func() {
				upd := `{"id": 1, "firstname": "Ada", "lastname": "Lovelace", "mail": "ada@example.com",
					"phone": "555", "birthday": "1815-12-10", "address": "Ockham Park",
					"contact_type": 0, "origin": 0, "gender": 0}`
				So(f.do(http.MethodPut, "/contacts/", upd).Code, ShouldEqual, http.StatusOK)

				got := decodeBody[model.Contact](f.do(http.MethodGet, "/contact/?contact_id=1", ""))
				So(*got.ContactType, ShouldEqual, 0)
				So(*got.Origin, ShouldEqual, 0)
				So(*got.Gender, ShouldEqual, 0)
			})

			Convey("And creating another contact with the same mail conflicts", func() {
				w := f.do(http.MethodPost, "/contacts/", contactJSON)
				So(w.Code, ShouldEqual, http.StatusConflict)
				So(decodeBody[errorBody](w).Code, ShouldEqual, "conflict")
			})

			Convey("And deleting it twice succeeds both times", func() {
				for i := 0; i < 2; i++ {
					w := f.do(http.MethodDelete, "/contacts/1", "")
					So(w.Code, ShouldEqual, http.StatusOK)
					So(decodeBody[model.Message](w).Message, ShouldEqual, "Contact deleted")
				}

				Convey("Then fetching it reports not found", func() {
					w := f.do(http.MethodGet, "/contact/?contact_id=1", "")
					So(w.Code, ShouldEqual, http.StatusNotFound)
					body := decodeBody[errorBody](w)
					So(body.Code, ShouldEqual, "not_found")
					So(body.Message, ShouldEqual, "Contact not found")
				})
			})
		})

		Convey("When fetching contact id 0 or no id", func() {
			Convey("Then both report not found", func() {
				So(f.do(http.MethodGet, "/contact/?contact_id=0", "").Code, ShouldEqual, http.StatusNotFound)
				So(f.do(http.MethodGet, "/contact/", "").Code, ShouldEqual, http.StatusNotFound)
				So(f.do(http.MethodGet, "/contact/?contact_id=abc", "").Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When a required field is missing", func() {
			w := f.do(http.MethodPost, "/contacts/", `{"lastname": "Lovelace", "mail": "x@y.z"}`)

			Convey("Then the response lists the failing fields", func() {
				So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
				body := decodeBody[errorBody](w)
				So(body.Code, ShouldEqual, "validation_failed")
				So(body.Fields, ShouldContainKey, "firstname")
				So(body.Fields, ShouldContainKey, "birthday")
				So(body.Fields, ShouldContainKey, "contact_type")
				So(body.Fields["origin"], ShouldEqual, "is required")
				So(body.Fields, ShouldNotContainKey, "lastname")
			})
		})

		Convey("When the body is not JSON", func() {
			w := f.do(http.MethodPost, "/contacts/", `{not json`)

			Convey("Then it is a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decodeBody[errorBody](w).Code, ShouldEqual, "bad_request")
			})
		})

		Convey("When the birthday is not a date", func() {
			body := strings.Replace(contactJSON, "1815-12-10", "10/12/1815", 1)
			So(f.do(http.MethodPost, "/contacts/", body).Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When an update has no id", func() {
			w := f.do(http.MethodPut, "/contacts/", contactJSON)
			So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
			So(decodeBody[errorBody](w).Fields, ShouldContainKey, "id")
		})

		Convey("When deleting with a non-integer id", func() {
			So(f.do(http.MethodDelete, "/contacts/abc", "").Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the database is gone", func() {
			So(f.store.Close(), ShouldBeNil)
			w := f.do(http.MethodGet, "/contacts/", "")

			Convey("Then the client sees a generic internal error", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				body := decodeBody[errorBody](w)
				So(body.Code, ShouldEqual, "internal_error")
				So(body.Message, ShouldEqual, "internal error")
				So(body.Message, ShouldNotContainSubstring, "sql")
			})
		})
	})
}

func TestTasks(t *testing.T) {
	Convey("Given a server with two users", t, func() {
		f := newFixture()
		Reset(func() { _ = f.store.Close() })
		grace := f.addUser("Grace", "Hopper", "grace@example.com")
		alan := f.addUser("Alan", "Turing", "alan@example.com")

		post := func(title string, user, contact int64) model.Task {
			body, err := json.Marshal(model.TaskIn{
				Title:     title,
				IDUser:    model.Ref(user),
				DateEnd:   model.NewDateTime(time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)),
				Status:    model.Ref(1),
				IDContact: model.Ref(contact),
			})
			So(err, ShouldBeNil)
			w := f.do(http.MethodPost, "/tasks/", string(body))
			So(w.Code, ShouldEqual, http.StatusOK)
			return decodeBody[model.Task](w)
		}

		first := post("Call", grace, 10)
		post("Mail", alan, 10)
		post("Orphan", 999, 10)
		post("Elsewhere", grace, 11)

		Convey("When listing the tasks of a contact", func() {
			w := f.do(http.MethodGet, "/tasks/?id_contact=10", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			tasks := decodeBody[[]model.TaskSummary](w)

			Convey("Then only that contact's tasks with an existing user are returned", func() {
				So(tasks, ShouldHaveLength, 2)
				So(tasks[0].Title, ShouldEqual, "Call")
				So(tasks[0].Firstname, ShouldEqual, "Grace")
				So(tasks[1].Title, ShouldEqual, "Mail")
				So(tasks[1].Lastname, ShouldEqual, "Turing")
				So(tasks[0].CreatedAt.IsZero(), ShouldBeFalse)
			})
		})

		Convey("When fetching one task", func() {
			w := f.do(http.MethodGet, "/task/?id_task=1", "")
			So(w.Code, ShouldEqual, http.StatusOK)

			Convey("Then the user id is included", func() {
				So(strings.Contains(w.Body.String(), `"id_user":`), ShouldBeTrue)
				So(decodeBody[model.TaskDetail](w).IDUser, ShouldEqual, grace)
			})
		})

		Convey("When fetching a task whose user is missing", func() {
			So(f.do(http.MethodGet, "/task/?id_task=3", "").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When updating a task", func() {
			upd := `{"id": 1, "title": "Call back", "id_user": ` + jsonInt(alan) +
				`, "date_end": "2031-01-01T00:00:00Z", "status": 9, "id_contact": 11}`
			w := f.do(http.MethodPut, "/tasks/", upd)
			So(w.Code, ShouldEqual, http.StatusOK)

			Convey("Then title, user and due date change but status and contact do not", func() {
				got := decodeBody[model.TaskDetail](f.do(http.MethodGet, "/task/?id_task=1", ""))
				So(got.Title, ShouldEqual, "Call back")
				So(got.IDUser, ShouldEqual, alan)
				So(got.DateEnd.Year(), ShouldEqual, 2031)

				tasks := decodeBody[[]model.TaskSummary](f.do(http.MethodGet, "/tasks/?id_contact=10", ""))
				So(tasks[0].ID, ShouldEqual, first.ID)
			})
		})

		Convey("When the contact filter is missing", func() {
			So(f.do(http.MethodGet, "/tasks/", "").Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When a task is created with only a title and a due date", func() {
			w := f.do(http.MethodPost, "/tasks/", `{"title": "Call", "date_end": "2030-01-02T03:04:05Z"}`)

			Convey("Then every reference is reported missing", func() {
				So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
				body := decodeBody[errorBody](w)
				So(body.Code, ShouldEqual, "validation_failed")
				So(body.Fields, ShouldContainKey, "id_user")
				So(body.Fields, ShouldContainKey, "status")
				So(body.Fields, ShouldContainKey, "id_contact")
				So(body.Fields, ShouldNotContainKey, "title")
			})
		})

		Convey("When a task update leaves out status and contact", func() {
			upd := `{"id": 1, "title": "Call back", "id_user": 1, "date_end": "2031-01-01T00:00:00Z"}`
			w := f.do(http.MethodPut, "/tasks/", upd)
			So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
			So(decodeBody[errorBody](w).Fields, ShouldContainKey, "status")
			So(decodeBody[model.TaskDetail](f.do(http.MethodGet, "/task/?id_task=1", "")).Title, ShouldEqual, "Call")
		})

		Convey("When the due date has no zone", func() {
			body := `{"title": "Naive", "id_user": ` + jsonInt(grace) +
				`, "date_end": "2025-01-01T10:00:00", "status": 0, "id_contact": 12}`
			w := f.do(http.MethodPost, "/tasks/", body)

			Convey("Then it is read as UTC", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				tasks := decodeBody[[]model.TaskSummary](f.do(http.MethodGet, "/tasks/?id_contact=12", ""))
				So(tasks, ShouldHaveLength, 1)
				So(tasks[0].DateEnd.Equal(time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)), ShouldBeTrue)
			})
		})

		Convey("When a task is deleted", func() {
			So(f.do(http.MethodDelete, "/tasks/1", "").Code, ShouldEqual, http.StatusOK)
			So(f.do(http.MethodGet, "/task/?id_task=1", "").Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestComments(t *testing.T) {
	Convey("Given a server", t, func() {
		f := newFixture()
		Reset(func() { _ = f.store.Close() })

		Convey("When comments are created for two contacts", func() {
			So(f.do(http.MethodPost, "/comments/", `{"id_contact": 5, "comment": "first"}`).Code, ShouldEqual, http.StatusOK)
			So(f.do(http.MethodPost, "/comments/", `{"id_contact": 6, "comment": "other"}`).Code, ShouldEqual, http.StatusOK)

			Convey("Then listing filters by contact", func() {
				comments := decodeBody[[]model.Comment](f.do(http.MethodGet, "/comments/?contact_id=5", ""))
				So(comments, ShouldHaveLength, 1)
				So(*comments[0].Comment, ShouldEqual, "first")
			})

			Convey("And updating rewrites only the text", func() {
				w := f.do(http.MethodPut, "/comments/", `{"id": 1, "id_contact": 6, "comment": "edited"}`)
				So(w.Code, ShouldEqual, http.StatusOK)

				got := decodeBody[model.Comment](f.do(http.MethodGet, "/comment/?id_comment=1", ""))
				So(*got.Comment, ShouldEqual, "edited")
				So(*got.IDContact, ShouldEqual, 5)
			})

			Convey("And deleting reports a message", func() {
				w := f.do(http.MethodDelete, "/comments/1", "")
				So(decodeBody[model.Message](w).Message, ShouldEqual, "Comment deleted")
				So(f.do(http.MethodGet, "/comment/?id_comment=1", "").Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When a comment has no fields at all", func() {
			w := f.do(http.MethodPost, "/comments/", `{}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			got := decodeBody[model.Comment](w)
			So(got.ID, ShouldBeGreaterThan, 0)
			So(got.IDContact, ShouldBeNil)
		})

		Convey("When listing without contact_id", func() {
			So(f.do(http.MethodGet, "/comments/", "").Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestLookupsAndUsers(t *testing.T) {
	Convey("Given a seeded server", t, func() {
		f := newFixture()
		Reset(func() { _ = f.store.Close() })
		So(f.store.Seed(context.Background(), repository.Seeds{
			ContactTypes: []string{"Lead"},
			Origins:      []string{"Web", "Referral"},
			Statuses:     []string{"Open"},
		}), ShouldBeNil)

		Convey("When listing the vocabularies", func() {
			So(decodeBody[[]model.ContactType](f.do(http.MethodGet, "/contact_types/", "")), ShouldHaveLength, 1)
			So(decodeBody[[]model.Origin](f.do(http.MethodGet, "/origins/", "")), ShouldHaveLength, 2)
			So(decodeBody[[]model.Status](f.do(http.MethodGet, "/status/", "")), ShouldHaveLength, 1)
			So(strings.TrimSpace(f.do(http.MethodGet, "/genders/", "").Body.String()), ShouldEqual, "[]")
		})

		Convey("When a gender is created", func() {
			w := f.do(http.MethodPost, "/gender/", `{"description": "Female"}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			g := decodeBody[model.Gender](w)

			Convey("Then it can be fetched by id", func() {
				got := decodeBody[model.Gender](f.do(http.MethodGet, "/gender/?id=1", ""))
				So(got, ShouldResemble, g)
				So(f.do(http.MethodGet, "/gender/?id=2", "").Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When a gender has no description", func() {
			So(f.do(http.MethodPost, "/gender/", `{}`).Code, ShouldEqual, http.StatusUnprocessableEntity)
		})

		Convey("When users exist", func() {
			id := f.addUser("Joan", "Clarke", "joan@example.com")

			Convey("Then a single user is returned without password", func() {
				w := f.do(http.MethodGet, "/user/?user_id="+jsonInt(id), "")
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldNotContainSubstring, "secret")
				So(decodeBody[model.User](w).Mail, ShouldEqual, "joan@example.com")
			})

			Convey("And the list has them all", func() {
				So(decodeBody[[]model.User](f.do(http.MethodGet, "/users/", "")), ShouldHaveLength, 1)
			})

			Convey("And an unknown user is not found", func() {
				So(f.do(http.MethodGet, "/user/?user_id=99", "").Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestOperationalRoutes(t *testing.T) {
	Convey("Given a server", t, func() {
		f := newFixture()
		Reset(func() { _ = f.store.Close() })

		Convey("Then health exposes metrics", func() {
			f.do(http.MethodGet, "/contacts/", "")
			w := f.do(http.MethodGet, "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "crm_api_http_requests_total")
		})

		Convey("Then readiness pings the database", func() {
			So(f.do(http.MethodGet, "/readyz", "").Code, ShouldEqual, http.StatusOK)
			So(f.store.Close(), ShouldBeNil)
			So(f.do(http.MethodGet, "/readyz", "").Code, ShouldEqual, http.StatusServiceUnavailable)
		})

		Convey("Then stats come from the provider", func() {
			w := f.do(http.MethodGet, "/stats", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decodeBody[map[string]interface{}](w)["running"], ShouldEqual, true)
		})

		Convey("Then a request id is generated when absent", func() {
			w := f.do(http.MethodGet, "/contacts/", "")
			So(w.Header().Get(api.HeaderRequestID), ShouldNotBeEmpty)
		})

		Convey("Then a client request id is echoed", func() {
			req := httptest.NewRequest(http.MethodGet, "/contacts/", http.NoBody)
			req.Header.Set(api.HeaderRequestID, "abc-123")
			w := httptest.NewRecorder()
			f.handler.ServeHTTP(w, req)
			So(w.Header().Get(api.HeaderRequestID), ShouldEqual, "abc-123")
		})

		Convey("Then CORS preflight requests are answered", func() {
			req := httptest.NewRequest(http.MethodOptions, "/contacts/", http.NoBody)
			req.Header.Set("Origin", "http://localhost:3000")
			req.Header.Set("Access-Control-Request-Method", http.MethodPut)
			w := httptest.NewRecorder()
			f.handler.ServeHTTP(w, req)
			So(w.Header().Get("Access-Control-Allow-Origin"), ShouldNotBeEmpty)
			So(w.Header().Get("Access-Control-Allow-Methods"), ShouldContainSubstring, http.MethodPut)
		})

		Convey("Then a wrong method is rejected by the router", func() {
			So(f.do(http.MethodPatch, "/contacts/", "{}").Code, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})
}

// slowStore holds contact listing until the request is cancelled.
type slowStore struct {
	*repository.GormStore
}

func (s slowStore) ListContacts(ctx context.Context) ([]model.Contact, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(5 * time.Second):
		return s.GormStore.ListContacts(ctx)
	}
}

func TestRequestTimeout(t *testing.T) {
	Convey("Given a server with a short request timeout and a slow store", t, func() {
		_ = logger.Init(logger.WithWriter(io.Discard))
		ctx := context.Background()
		store, err := repository.Open(ctx, repository.DriverSQLite, ":memory:")
		So(err, ShouldBeNil)
		So(store.Migrate(ctx), ShouldBeNil)
		Reset(func() { _ = store.Close() })

		server := api.NewServer(slowStore{store}, &mockStatsProvider{}, api.WithRequestTimeout(10*time.Millisecond))
		mux := http.NewServeMux()
		server.Register(ctx, mux)
		handler := server.Handler(mux)

		Convey("When a request outlives the deadline", func() {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/contacts/", http.NoBody))

			Convey("Then the client gets a JSON timeout error", func() {
				So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
				So(w.Header().Get("Content-Type"), ShouldStartWith, "application/json")
				So(decodeBody[errorBody](w).Code, ShouldEqual, "timeout")
			})
		})

		Convey("When the router answers before the deadline", func() {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/contacts/", http.NoBody))

			Convey("Then the router's content type wins", func() {
				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
				So(w.Header().Get("Content-Type"), ShouldStartWith, "text/plain")
			})
		})
	})
}

func jsonInt(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}
