package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

var (
	_ repository.CustomerRepository = (*CustomerRepo)(nil)
	_ repository.EmployeeRepository = (*EmployeeRepo)(nil)
	_ repository.UserRepository     = (*UserRepo)(nil)
)

// CustomerRepo clientes en memoria; el DNI es único.
type CustomerRepo struct {
	s *Store
}

// NewCustomerRepository construye el repositorio de clientes sobre s.
func NewCustomerRepository(s *Store) *CustomerRepo { return &CustomerRepo{s: s} }

func (r *CustomerRepo) dniTaken(dni, exceptID string) bool {
	for id, c := range r.s.customers {
		if c.DNI == dni && id != exceptID {
			return true
		}
	}
	return false
}

// Create guarda el cliente.
func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[c.ID]; ok || r.dniTaken(c.DNI, "") {
		return domain.ErrDuplicate
	}
	r.s.customers[c.ID] = *c
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// GetByDNI busca un cliente por DNI.
func (r *CustomerRepo) GetByDNI(_ context.Context, dni string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.customers {
		if c.DNI == dni {
			return &c, nil
		}
	}
	return nil, nil
}

// List devuelve una página de clientes.
func (r *CustomerRepo) List(_ context.Context, limit, offset int) ([]*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]*entity.Customer, 0, len(r.s.customers))
	for _, c := range r.s.customers {
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].FullName() < all[j].FullName() })
	return page(all, limit, offset), nil
}

// Update reemplaza el cliente existente.
func (r *CustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[c.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.dniTaken(c.DNI, c.ID) {
		return domain.ErrDuplicate
	}
	r.s.customers[c.ID] = *c
	return nil
}

// Delete elimina el cliente.
func (r *CustomerRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[id]; !ok {
		return domain.ErrNotFound
	}
	for _, inv := range r.s.invoices {
		if inv.CustomerID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.customers, id)
	return nil
}

// EmployeeRepo empleados en memoria; la identificación de la persona es única.
type EmployeeRepo struct {
	s *Store
}

// NewEmployeeRepository construye el repositorio de empleados sobre s.
func NewEmployeeRepository(s *Store) *EmployeeRepo { return &EmployeeRepo{s: s} }

func (r *EmployeeRepo) identificationTaken(identification, exceptID string) bool {
	for id, e := range r.s.employees {
		if e.Person.Identification == identification && id != exceptID {
			return true
		}
	}
	return false
}

// Create guarda el empleado.
func (r *EmployeeRepo) Create(_ context.Context, e *entity.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.employees[e.ID]; ok || r.identificationTaken(e.Person.Identification, "") {
		return domain.ErrDuplicate
	}
	r.s.employees[e.ID] = *e
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *EmployeeRepo) GetByID(_ context.Context, id string) (*entity.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.employees[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

// GetByIdentification busca por documento de identidad.
func (r *EmployeeRepo) GetByIdentification(_ context.Context, identification string) (*entity.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.employees {
		if e.Person.Identification == identification {
			return &e, nil
		}
	}
	return nil, nil
}

// Update reemplaza el empleado existente.
func (r *EmployeeRepo) Update(_ context.Context, e *entity.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.employees[e.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.identificationTaken(e.Person.Identification, e.ID) {
		return domain.ErrDuplicate
	}
	r.s.employees[e.ID] = *e
	return nil
}

// List devuelve una página de empleados.
func (r *EmployeeRepo) List(_ context.Context, limit, offset int) ([]*entity.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]*entity.Employee, 0, len(r.s.employees))
	for _, e := range r.s.employees {
		all = append(all, &e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Person.LastNames < all[j].Person.LastNames })
	return page(all, limit, offset), nil
}

// Delete elimina el empleado.
func (r *EmployeeRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.employees[id]; !ok {
		return domain.ErrNotFound
	}
	for _, inv := range r.s.invoices {
		if inv.EmployeeID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.employees, id)
	return nil
}

// UserRepo usuarios en memoria; el username es único.
type UserRepo struct {
	s *Store
}

// NewUserRepository construye el repositorio de usuarios sobre s.
func NewUserRepository(s *Store) *UserRepo { return &UserRepo{s: s} }

// Create guarda el usuario.
func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.users {
		if other.Username == u.Username {
			return domain.ErrUserAlreadyExists
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// GetByUsername busca por nombre de usuario.
func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

// Update reemplaza el usuario existente.
func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.s.users[u.ID] = *u
	return nil
}
