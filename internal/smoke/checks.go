package smoke

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/okian/crm/internal/domain/model"
)

// session carries state between checks of one run.
type session struct {
	client  *HTTPClient
	contact model.Contact
}

type check struct {
	name string
	run  func(ctx context.Context, s *session) error
}

// checks run in order; later checks rely on the contact created earlier.
func checks() []check {
	return []check{
		{"ready", checkReady},
		{"contact_round_trip", checkContactRoundTrip},
		{"contact_update", checkContactUpdate},
		{"duplicate_mail_conflict", checkDuplicateMail},
		{"contact_missing_id", checkMissingContact},
		{"task_user_join", checkTaskJoin},
		{"comments", checkComments},
		{"contact_delete_idempotent", checkDeleteTwice},
	}
}

var errNoContact = errors.New("no contact from an earlier check")

func checkReady(ctx context.Context, s *session) error {
	res, err := s.client.do(ctx, http.MethodGet, "/readyz", nil)
	if err != nil {
		return err
	}
	return res.expect(http.StatusOK)
}

func newContact() model.ContactIn {
	return model.ContactIn{
		Firstname:   "Smoke",
		Lastname:    "Test",
		Mail:        "smoke-" + uuid.NewString() + "@example.com",
		Phone:       "+1 555 0100",
		Birthday:    civil.Date{Year: 1990, Month: time.May, Day: 17},
		Address:     "1 Test Street",
		ContactType: model.Ref(0),
		Origin:      model.Ref(0),
		Gender:      model.Ref(0),
	}
}

func sameContact(want, got model.Contact) error {
	switch {
	case got.ID != want.ID:
		return fmt.Errorf("id: want %d, got %d", want.ID, got.ID)
	case got.Firstname != want.Firstname || got.Lastname != want.Lastname:
		return fmt.Errorf("name: want %s %s, got %s %s", want.Firstname, want.Lastname, got.Firstname, got.Lastname)
	case got.Mail != want.Mail:
		return fmt.Errorf("mail: want %s, got %s", want.Mail, got.Mail)
	case got.Phone != want.Phone || got.Address != want.Address:
		return fmt.Errorf("phone/address mismatch: %+v", got)
	case got.Birthday.String() != want.Birthday.String():
		return fmt.Errorf("birthday: want %s, got %s", want.Birthday, got.Birthday)
	case !sameRef(got.ContactType, want.ContactType) || !sameRef(got.Origin, want.Origin) || !sameRef(got.Gender, want.Gender):
		return fmt.Errorf("references mismatch: %+v", got)
	}
	return nil
}

func sameRef(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (s *session) fetchContact(ctx context.Context, id int64) (response, model.Contact, error) {
	res, err := s.client.do(ctx, http.MethodGet, "/contact/?contact_id="+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return res, model.Contact{}, err
	}
	var c model.Contact
	if res.Status == http.StatusOK {
		err = res.decode(&c)
	}
	return res, c, err
}

func checkContactRoundTrip(ctx context.Context, s *session) error {
	in := newContact()
	res, err := s.client.do(ctx, http.MethodPost, "/contacts/", in)
	if err != nil {
		return err
	}
	if err := res.expect(http.StatusOK); err != nil {
		return err
	}
	var created model.Contact
	if err := res.decode(&created); err != nil {
		return err
	}
	if created.ID <= 0 {
		return fmt.Errorf("expected a positive id, got %d", created.ID)
	}
	s.contact = created

	res, got, err := s.fetchContact(ctx, created.ID)
	if err != nil {
		return err
	}
	if err := res.expect(http.StatusOK); err != nil {
		return err
	}
	return sameContact(in.WithID(created.ID), got)
}

func checkContactUpdate(ctx context.Context, s *session) error {
	if s.contact.ID == 0 {
		return errNoContact
	}
	upd := s.contact
	upd.Firstname = "Updated"
	upd.Lastname = "Contact"
	upd.Mail = "smoke-" + uuid.NewString() + "@example.com"
	upd.Phone = "+1 555 0199"
	upd.Birthday = civil.Date{Year: 1991, Month: time.June, Day: 18}
	upd.Address = "2 Changed Road"
	upd.ContactType, upd.Origin, upd.Gender = model.Ref(1), model.Ref(1), model.Ref(1)

	res, err := s.client.do(ctx, http.MethodPut, "/contacts/", upd)
	if err != nil {
		return err
	}
	if err := res.expect(http.StatusOK); err != nil {
		return err
	}
	res, got, err := s.fetchContact(ctx, upd.ID)
	if err != nil {
		return err
	}
	if err := res.expect(http.StatusOK); err != nil {
		return err
	}
	if err := sameContact(upd, got); err != nil {
		return err
	}
	s.contact = upd
	return nil
}

func checkDuplicateMail(ctx context.Context, s *session) error {
	if s.contact.ID == 0 {
		return errNoContact
	}
	dup := newContact()
	dup.Mail = s.contact.Mail
	res, err := s.client.do(ctx, http.MethodPost, "/contacts/", dup)
	if err != nil {
		return err
	}
	if err := res.expect(http.StatusConflict); err != nil {
		return err
	}
	var body struct {
		Code string `json:"code"`
	}
	if err := res.decode(&body); err != nil {
		return err
	}
	if body.Code != "conflict" {
		return fmt.Errorf("expected code conflict, got %q", body.Code)
	}
	return nil
}

func checkMissingContact(ctx context.Context, s *session) error {
	for _, path := range []string{"/contact/?contact_id=0", "/contact/"} {
		res, err := s.client.do(ctx, http.MethodGet, path, nil)
		if err != nil {
			return err
		}
		if err := res.expect(http.StatusNotFound); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func checkTaskJoin(ctx context.Context, s *session) error {
	if s.contact.ID == 0 {
		return errNoContact
	}
	res, err := s.client.do(ctx, http.MethodGet, "/users/", nil)
	if err != nil {
		return err
	}
	if err := res.expect(http.StatusOK); err != nil {
		return err
	}
	var users []model.User
	if err := res.decode(&users); err != nil {
		return err
	}
	var maxID int64
	for _, u := range users {
		maxID = max(maxID, u.ID)
	}

	due := model.NewDateTime(time.Now().Add(24 * time.Hour).Truncate(time.Second))
	var created []int64
	defer func() {
		for _, id := range created {
			_, _ = s.client.do(context.WithoutCancel(ctx), http.MethodDelete, "/tasks/"+strconv.FormatInt(id, 10), nil)
		}
	}()
	post := func(title string, user int64) (int64, error) {
		res, err := s.client.do(ctx, http.MethodPost, "/tasks/", model.TaskIn{
			Title:     title,
			IDUser:    model.Ref(user),
			DateEnd:   due,
			Status:    model.Ref(0),
			IDContact: model.Ref(s.contact.ID),
		})
		if err != nil {
			return 0, err
		}
		if err := res.expect(http.StatusOK); err != nil {
			return 0, err
		}
		var t model.Task
		if err := res.decode(&t); err != nil {
			return 0, err
		}
		created = append(created, t.ID)
		return t.ID, nil
	}

	orphanID, err := post("smoke orphan", maxID+1000)
	if err != nil {
		return err
	}
	var assignedID int64
	if len(users) > 0 {
		if assignedID, err = post("smoke assigned", users[0].ID); err != nil {
			return err
		}
	}

	res, err = s.client.do(ctx, http.MethodGet, "/tasks/?id_contact="+strconv.FormatInt(s.contact.ID, 10), nil)
	if err != nil {
		return err
	}
	if err := res.expect(http.StatusOK); err != nil {
		return err
	}
	var tasks []model.TaskSummary
	if err := res.decode(&tasks); err != nil {
		return err
	}
	var sawAssigned bool
	for _, t := range tasks {
		if t.ID == orphanID {
			return fmt.Errorf("task %d has no user but was listed", orphanID)
		}
		if t.ID == assignedID {
			sawAssigned = true
			if t.Firstname != users[0].Firstname || t.Lastname != users[0].Lastname {
				return fmt.Errorf("task %d joined with %s %s, want %s %s",
					t.ID, t.Firstname, t.Lastname, users[0].Firstname, users[0].Lastname)
			}
		}
	}
	if assignedID != 0 && !sawAssigned {
		return fmt.Errorf("task %d missing from the contact's list", assignedID)
	}
	return nil
}

func checkComments(ctx context.Context, s *session) error {
	if s.contact.ID == 0 {
		return errNoContact
	}
	text := "smoke comment"
	res, err := s.client.do(ctx, http.MethodPost, "/comments/", model.CommentIn{IDContact: &s.contact.ID, Comment: &text})
	if err != nil {
		return err
	}
	if err := res.expect(http.StatusOK); err != nil {
		return err
	}
	var c model.Comment
	if err := res.decode(&c); err != nil {
		return err
	}
	idPath := strconv.FormatInt(c.ID, 10)
	defer func() {
		_, _ = s.client.do(context.WithoutCancel(ctx), http.MethodDelete, "/comments/"+idPath, nil)
	}()

	edited := "smoke comment, edited"
	c.Comment = &edited
	res, err = s.client.do(ctx, http.MethodPut, "/comments/", c)
	if err != nil {
		return err
	}
	if err := res.expect(http.StatusOK); err != nil {
		return err
	}

	res, err = s.client.do(ctx, http.MethodGet, "/comment/?id_comment="+idPath, nil)
	if err != nil {
		return err
	}
	if err := res.expect(http.StatusOK); err != nil {
		return err
	}
	var got model.Comment
	if err := res.decode(&got); err != nil {
		return err
	}
	if got.Comment == nil || *got.Comment != edited {
		return fmt.Errorf("comment %d was not updated", c.ID)
	}

	res, err = s.client.do(ctx, http.MethodGet, "/comments/?contact_id="+strconv.FormatInt(s.contact.ID, 10), nil)
	if err != nil {
		return err
	}
	var list []model.Comment
	if err := res.decode(&list); err != nil {
		return err
	}
	if len(list) != 1 || list[0].ID != c.ID {
		return fmt.Errorf("expected only comment %d for contact %d, got %d comments", c.ID, s.contact.ID, len(list))
	}
	return nil
}

func checkDeleteTwice(ctx context.Context, s *session) error {
	if s.contact.ID == 0 {
		return errNoContact
	}
	path := "/contacts/" + strconv.FormatInt(s.contact.ID, 10)
	for i := 0; i < 2; i++ {
		res, err := s.client.do(ctx, http.MethodDelete, path, nil)
		if err != nil {
			return err
		}
		if err := res.expect(http.StatusOK); err != nil {
			return fmt.Errorf("delete #%d: %w", i+1, err)
		}
	}
	res, _, err := s.fetchContact(ctx, s.contact.ID)
	if err != nil {
		return err
	}
	return res.expect(http.StatusNotFound)
}
