package service

import (
	"sort"
	"time"

	"go-skystore/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes. They return copies so cached values can go
// stale the way real query results do.

type fakeProductRepo struct {
	products map[uuid.UUID]model.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]model.Product)}
}

func (r *fakeProductRepo) Create(product *model.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}
	r.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *fakeProductRepo) FindByName(name string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Name == name {
			found := p
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProductRepo) sorted(filter func(model.Product) bool) []model.Product {
	var out []model.Product
	for _, p := range r.products {
		if filter(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *fakeProductRepo) FindPublished(limit, offset int) ([]model.Product, int64, error) {
	published := r.sorted(func(p model.Product) bool { return p.Published })
	total := int64(len(published))
	if offset > len(published) {
		offset = len(published)
	}
	end := offset + limit
	if end > len(published) {
		end = len(published)
	}
	return published[offset:end], total, nil
}

func (r *fakeProductRepo) FindPublishedByCategory(categoryID uint) ([]model.Product, error) {
	return r.sorted(func(p model.Product) bool {
		return p.Published && p.CategoryID == categoryID
	}), nil
}

func (r *fakeProductRepo) FindByCategory(categoryID uint) ([]model.Product, error) {
	return r.sorted(func(p model.Product) bool {
		return p.CategoryID == categoryID
	}), nil
}

func (r *fakeProductRepo) FindLatest(n int) ([]model.Product, error) {
	published := r.sorted(func(p model.Product) bool { return p.Published })
	if n > len(published) {
		n = len(published)
	}
	return published[:n], nil
}

func (r *fakeProductRepo) FindUnpublished() ([]model.Product, error) {
	return r.sorted(func(p model.Product) bool { return !p.Published }), nil
}

func (r *fakeProductRepo) CountUnpublished() (int64, error) {
	unpublished, _ := r.FindUnpublished()
	return int64(len(unpublished)), nil
}

func (r *fakeProductRepo) Update(product *model.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) Delete(id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

type fakeCategoryRepo struct {
	categories map[uint]model.Category
	products   *fakeProductRepo
	nextID     uint
}

func newFakeCategoryRepo(products *fakeProductRepo) *fakeCategoryRepo {
	return &fakeCategoryRepo{
		categories: make(map[uint]model.Category),
		products:   products,
		nextID:     1,
	}
}

func (r *fakeCategoryRepo) FindAll() ([]model.Category, error) {
	var out []model.Category
	for _, c := range r.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeCategoryRepo) FindByID(id uint) (*model.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *fakeCategoryRepo) FindByName(name string) (*model.Category, error) {
	for _, c := range r.categories {
		if c.Name == name {
			found := c
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCategoryRepo) Create(category *model.Category) error {
	if category.ID == 0 {
		category.ID = r.nextID
		r.nextID++
	}
	r.categories[category.ID] = *category
	return nil
}

func (r *fakeCategoryRepo) Update(category *model.Category) error {
	if _, ok := r.categories[category.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.categories[category.ID] = *category
	return nil
}

// Delete mirrors the real repository: the category's products go with it
func (r *fakeCategoryRepo) Delete(id uint) error {
	if r.products != nil {
		for pid, p := range r.products.products {
			if p.CategoryID == id {
				delete(r.products.products, pid)
			}
		}
	}
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) SeedDefaults() error { return nil }

type fakeArticleRepo struct {
	articles map[uint]model.Article
	nextID   uint
}

func newFakeArticleRepo() *fakeArticleRepo {
	return &fakeArticleRepo{articles: make(map[uint]model.Article), nextID: 1}
}

func (r *fakeArticleRepo) Create(article *model.Article) error {
	if article.ID == 0 {
		article.ID = r.nextID
		r.nextID++
	}
	if article.CreatedAt.IsZero() {
		article.CreatedAt = time.Now()
	}
	r.articles[article.ID] = *article
	return nil
}

func (r *fakeArticleRepo) FindByID(id uint) (*model.Article, error) {
	a, ok := r.articles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

func (r *fakeArticleRepo) FindByTitle(title string) (*model.Article, error) {
	for _, a := range r.articles {
		if a.Title == title {
			found := a
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeArticleRepo) sorted(filter func(model.Article) bool) []model.Article {
	var out []model.Article
	for _, a := range r.articles {
		if filter(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *fakeArticleRepo) FindPublished(limit, offset int) ([]model.Article, int64, error) {
	published := r.sorted(func(a model.Article) bool { return a.Published })
	total := int64(len(published))
	if offset > len(published) {
		offset = len(published)
	}
	end := offset + limit
	if end > len(published) {
		end = len(published)
	}
	return published[offset:end], total, nil
}

func (r *fakeArticleRepo) FindUnpublished() ([]model.Article, error) {
	return r.sorted(func(a model.Article) bool { return !a.Published }), nil
}

func (r *fakeArticleRepo) CountUnpublished() (int64, error) {
	unpublished, _ := r.FindUnpublished()
	return int64(len(unpublished)), nil
}

func (r *fakeArticleRepo) Update(article *model.Article) error {
	if _, ok := r.articles[article.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.articles[article.ID] = *article
	return nil
}

func (r *fakeArticleRepo) Delete(id uint) error {
	delete(r.articles, id)
	return nil
}

func (r *fakeArticleRepo) IncrementViews(id uint) error {
	a, ok := r.articles[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.ViewsCounter++
	r.articles[id] = a
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]model.User)}
}

func (r *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) FindAll() ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *fakeUserRepo) Create(user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Update(user *model.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Delete(id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) UpdatePassword(userID uuid.UUID, hashedPassword string) error {
	u, ok := r.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Password = hashedPassword
	r.users[userID] = u
	return nil
}

func (r *fakeUserRepo) UpdatePrivileges(userID uuid.UUID, privileges []model.Privilege) error {
	u, ok := r.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Privileges = privileges
	r.users[userID] = u
	return nil
}

func (r *fakeUserRepo) UpdateTokenVersion(userID uuid.UUID, version string) error {
	u, ok := r.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.TokenVersion = version
	r.users[userID] = u
	return nil
}

type fakeContactsRepo struct {
	data *model.ContactsData
}

func (r *fakeContactsRepo) Get() (*model.ContactsData, error) {
	if r.data == nil {
		return nil, gorm.ErrRecordNotFound
	}
	found := *r.data
	return &found, nil
}

func (r *fakeContactsRepo) Seed(data *model.ContactsData) error {
	if r.data == nil {
		data.ID = 1
		r.data = data
	}
	return nil
}

type fakeFeedbackRepo struct {
	feedback []model.Feedback
}

func (r *fakeFeedbackRepo) Create(feedback *model.Feedback) error {
	r.feedback = append(r.feedback, *feedback)
	return nil
}

func (r *fakeFeedbackRepo) FindAll() ([]model.Feedback, error) {
	out := make([]model.Feedback, len(r.feedback))
	copy(out, r.feedback)
	return out, nil
}

type fakeRoleRepo struct {
	roles map[uint]model.Role
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: make(map[uint]model.Role)}
}

func (r *fakeRoleRepo) FindAll() ([]model.Role, error) {
	var out []model.Role
	for _, role := range r.roles {
		out = append(out, role)
	}
	return out, nil
}

func (r *fakeRoleRepo) FindByID(id uint) (*model.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &role, nil
}

func (r *fakeRoleRepo) FindByCode(code string) (*model.Role, error) {
	for _, role := range r.roles {
		if role.Code == code {
			found := role
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRoleRepo) SeedDefaults() error { return nil }

type fakePrivilegeRepo struct {
	privileges []model.Privilege
}

func (r *fakePrivilegeRepo) FindByCode(code string) (*model.Privilege, error) {
	for _, p := range r.privileges {
		if p.Code == code {
			found := p
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePrivilegeRepo) FindByCodes(codes []string) ([]model.Privilege, error) {
	var out []model.Privilege
	for _, code := range codes {
		for _, p := range r.privileges {
			if p.Code == code {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (r *fakePrivilegeRepo) FindAll() ([]model.Privilege, error) {
	out := make([]model.Privilege, len(r.privileges))
	copy(out, r.privileges)
	return out, nil
}

func (r *fakePrivilegeRepo) SeedDefaults() error { return nil }

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeMailer struct {
	err  error
	sent []sentMail
}

func (m *fakeMailer) Send(to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}
