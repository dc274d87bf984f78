package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"tenant-auth/internal/domain"
)

type mockUserRepo struct {
	usersByID       map[string]domain.User
	usersByEmail    map[string]string
	usersByUsername map[string]string
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		usersByID:       make(map[string]domain.User),
		usersByEmail:    make(map[string]string),
		usersByUsername: make(map[string]string),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) error {
	m.usersByID[user.ID] = user
	if user.Email != "" {
		m.usersByEmail[user.Email] = user.ID
	}
	if user.Username != "" {
		m.usersByUsername[user.Username] = user.ID
	}
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	user, ok := m.usersByID[id]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	id, ok := m.usersByEmail[email]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return m.GetByID(context.Background(), id)
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (domain.User, error) {
	id, ok := m.usersByUsername[username]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return m.GetByID(context.Background(), id)
}

func (m *mockUserRepo) UpdateInvitationToken(_ context.Context, id, token string) error {
	user, ok := m.usersByID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.InvitationToken = token
	m.usersByID[id] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	user, ok := m.usersByID[id]
	if ok {
		delete(m.usersByEmail, user.Email)
		delete(m.usersByUsername, user.Username)
		delete(m.usersByID, id)
	}
	return nil
}

type mockPassportRepo struct {
	passports map[string]domain.Passport
}

func newMockPassportRepo() *mockPassportRepo {
	return &mockPassportRepo{passports: make(map[string]domain.Passport)}
}

func (m *mockPassportRepo) Create(_ context.Context, passport domain.Passport) error {
	m.passports[passport.ID] = passport
	return nil
}

func (m *mockPassportRepo) GetByUserAndProtocol(_ context.Context, userID, protocol string) (domain.Passport, error) {
	for _, p := range m.passports {
		if p.UserID == userID && p.Protocol == protocol {
			return p, nil
		}
	}
	return domain.Passport{}, pgx.ErrNoRows
}

func (m *mockPassportRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	p, ok := m.passports[id]
	if !ok {
		return pgx.ErrNoRows
	}
	p.Password = passwordHash
	m.passports[id] = p
	return nil
}

func (m *mockPassportRepo) DeleteByUser(_ context.Context, userID string) error {
	for id, p := range m.passports {
		if p.UserID == userID {
			delete(m.passports, id)
		}
	}
	return nil
}

type mockMemberRepo struct {
	members map[string]domain.Member
}

func newMockMemberRepo() *mockMemberRepo {
	return &mockMemberRepo{members: make(map[string]domain.Member)}
}

func (m *mockMemberRepo) Create(_ context.Context, member domain.Member) error {
	m.members[member.ID] = member
	return nil
}

func (m *mockMemberRepo) GetByID(_ context.Context, id string) (domain.Member, error) {
	member, ok := m.members[id]
	if !ok {
		return domain.Member{}, pgx.ErrNoRows
	}
	return member, nil
}

func (m *mockMemberRepo) FindByUser(_ context.Context, userID, customerName string) ([]domain.Member, error) {
	var out []domain.Member
	for _, member := range m.members {
		if member.UserID != userID {
			continue
		}
		if customerName != "" && member.CustomerName != customerName {
			continue
		}
		out = append(out, member)
	}
	return out, nil
}

func (m *mockMemberRepo) FindByCustomerAndCredential(_ context.Context, customerID string, credential domain.Credential) ([]domain.Member, error) {
	var out []domain.Member
	for _, member := range m.members {
		if member.CustomerID == customerID && member.Credential == credential {
			out = append(out, member)
		}
	}
	return out, nil
}

func (m *mockMemberRepo) Delete(_ context.Context, id string) error {
	delete(m.members, id)
	return nil
}

type mockSessionRepo struct {
	sessions map[string]domain.Session // keyed por user_id|customer_id
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]domain.Session)}
}

func sessionKey(userID, customerID string) string {
	return userID + "|" + customerID
}

func (m *mockSessionRepo) Upsert(_ context.Context, session domain.Session) error {
	m.sessions[sessionKey(session.UserID, session.CustomerID)] = session
	return nil
}

func (m *mockSessionRepo) GetByToken(_ context.Context, token string) (domain.Session, error) {
	for _, s := range m.sessions {
		if s.Token == token {
			return s, nil
		}
	}
	return domain.Session{}, pgx.ErrNoRows
}

func (m *mockSessionRepo) GetByUserAndCustomer(_ context.Context, userID, customerID string) (domain.Session, error) {
	s, ok := m.sessions[sessionKey(userID, customerID)]
	if !ok {
		return domain.Session{}, pgx.ErrNoRows
	}
	return s, nil
}

func (m *mockSessionRepo) DeleteByUserAndCustomer(_ context.Context, userID, customerID string) error {
	delete(m.sessions, sessionKey(userID, customerID))
	return nil
}

type mockEmailSender struct {
	recoverTo    string
	recoverToken string
	activationTo string
	activation   string
	err          error
}

func (m *mockEmailSender) SendPasswordRecover(_ context.Context, user domain.User, token string) error {
	if m.err != nil {
		return m.err
	}
	m.recoverTo = user.Email
	m.recoverToken = token
	return nil
}

func (m *mockEmailSender) SendActivation(_ context.Context, user domain.User, token string) error {
	if m.err != nil {
		return m.err
	}
	m.activationTo = user.Email
	m.activation = token
	return nil
}
