package handlers

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/colourful-jobs/platform-backend/internal/models"
	"github.com/colourful-jobs/platform-backend/internal/notify"
	"github.com/colourful-jobs/platform-backend/internal/services/credits"
	"github.com/colourful-jobs/platform-backend/internal/wizard"
)

// VacancyHandler drives the vacancy wizard: lazy creation from the package
// step, auto-save with snapshot dedup, per-step validation gating and the
// credit/invoice checkout on submit.
type VacancyHandler struct {
	DB              *gorm.DB
	Credits         *credits.Service
	RDB             *redis.Client
	Hub             *notify.Hub
	FrontendBaseURL string
}

func NewVacancyHandler(db *gorm.DB, creditsSvc *credits.Service, rdb *redis.Client, hub *notify.Hub, frontendBaseURL string) *VacancyHandler {
	return &VacancyHandler{
		DB:              db,
		Credits:         creditsSvc,
		RDB:             rdb,
		Hub:             hub,
		FrontendBaseURL: strings.TrimRight(frontendBaseURL, "/"),
	}
}

func (h *VacancyHandler) Routes(r fiber.Router, authMiddleware ...fiber.Handler) {
	g := r.Group("/vacancies", authMiddleware...)
	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Get("/:id", h.Get)
	g.Patch("/:id", h.Save)
	g.Post("/:id/advance", h.Advance)
	g.Post("/:id/previous", h.Previous)
	g.Post("/:id/step", h.JumpTo)
	g.Get("/:id/cost", h.Cost)
	g.Post("/:id/submit", h.Submit)
	g.Post("/:id/sync", h.Sync)
}

// ========= draft plumbing =========

func upsellIDs(v *models.Vacancy) []string {
	if len(v.UpsellIDs) == 0 {
		return nil
	}
	var ids []string
	if err := json.Unmarshal(v.UpsellIDs, &ids); err != nil {
		return nil
	}
	return ids
}

func draftOf(v *models.Vacancy) wizard.Draft {
	d := wizard.Draft{
		UpsellIDs:      upsellIDs(v),
		Title:          v.Title,
		Description:    v.Description,
		Location:       v.Location,
		EmploymentType: v.EmploymentType,
		EducationLevel: v.EducationLevel,
		SalaryMin:      v.SalaryMin,
		SalaryMax:      v.SalaryMax,
		ContactName:    v.ContactName,
		ContactEmail:   v.ContactEmail,
		ContactPhone:   v.ContactPhone,
	}
	if v.ProductID != nil {
		d.PackageID = v.ProductID.String()
	}
	return d
}

func (h *VacancyHandler) inputType(v *models.Vacancy) wizard.InputType {
	t, ok := wizard.ParseInputType(v.InputType)
	if !ok {
		return wizard.InputSelfService
	}
	return t
}

// wizardBlock is the server-validated counterpart of the client's
// ?id=&step= bookkeeping: the client treats its own step as a hint and
// renders whatever this block says.
func (h *VacancyHandler) wizardBlock(v *models.Vacancy, hint wizard.Step) fiber.Map {
	t := h.inputType(v)
	isExisting := v.SubmittedAt != nil
	completed := wizard.Completed(t, draftOf(v), isExisting)

	step := wizard.Step(v.CurrentStep)
	if hint != 0 {
		step = hint
	}
	step = wizard.Clamp(step, completed, isExisting)

	return fiber.Map{
		"step":      step,
		"min_step":  wizard.MinStep(isExisting),
		"read_only": v.Status.ReadOnly(),
		"existing":  isExisting,
		"steps":     wizard.StepStates(step, completed, isExisting),
	}
}

func stepHint(c *fiber.Ctx) wizard.Step {
	n := c.QueryInt("step", 0)
	if n == 0 {
		return 0
	}
	s, err := wizard.ParseStep(n)
	if err != nil {
		return 0
	}
	return s
}

func (h *VacancyHandler) ownVacancy(c *fiber.Ctx, e *models.Employer) (*models.Vacancy, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid vacancy id")
	}
	var v models.Vacancy
	if err := h.DB.First(&v, "id = ? AND employer_id = ?", id, e.ID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "vacancy not found")
	}
	return &v, nil
}

// loadSelection resolves the selected package and upsells into the pure cost
// inputs. A missing or non-package product id is a business error.
func (h *VacancyHandler) loadSelection(v *models.Vacancy) (wizard.Package, []wizard.PricedItem, error) {
	var pkg wizard.Package
	if v.ProductID == nil {
		return pkg, nil, gorm.ErrRecordNotFound
	}

	var p models.Product
	if err := h.DB.First(&p, "id = ? AND type = ? AND active = true", *v.ProductID, models.ProductPackage).Error; err != nil {
		return pkg, nil, err
	}

	pkg = wizard.Package{
		PricedItem: wizard.PricedItem{ID: p.ID.String(), Credits: p.Credits, Price: p.Price},
	}
	if len(p.IncludedUpsells) > 0 {
		var inc []string
		if err := json.Unmarshal(p.IncludedUpsells, &inc); err == nil {
			pkg.IncludedUpsells = inc
		}
	}

	ids := upsellIDs(v)
	if len(ids) == 0 {
		return pkg, nil, nil
	}
	var ups []models.Product
	if err := h.DB.Where("id IN ? AND type = ? AND active = true", ids, models.ProductUpsell).Find(&ups).Error; err != nil {
		return pkg, nil, err
	}
	items := make([]wizard.PricedItem, 0, len(ups))
	for _, u := range ups {
		items = append(items, wizard.PricedItem{ID: u.ID.String(), Credits: u.Credits, Price: u.Price})
	}
	return pkg, items, nil
}

// ========= handlers =========

func (h *VacancyHandler) List(c *fiber.Ctx) error {
	_, e, err := getEmployerUser(h.DB, c)
	if err != nil {
		if err == ErrNoEmployer {
			return c.JSON(fiber.Map{"success": true, "data": []models.Vacancy{}})
		}
		return err
	}

	var vacancies []models.Vacancy
	if err := h.DB.Where("employer_id = ?", e.ID).Order("created_at DESC").Find(&vacancies).Error; err != nil {
		return fail500(c, "failed to load vacancies")
	}
	return c.JSON(fiber.Map{"success": true, "data": vacancies})
}

type createVacancyReq struct {
	ProductID string   `json:"product_id"`
	UpsellIDs []string `json:"upsell_ids"`
	InputType string   `json:"input_type"`
}

// Create is the step-1 "Next" of a new vacancy: the server record only
// exists once a package has been picked. On failure nothing is created and
// the client stays on step 1.
func (h *VacancyHandler) Create(c *fiber.Ctx) error {
	_, e, err := getEmployerUser(h.DB, c)
	if err != nil {
		if err == ErrNoEmployer {
			return fail200(c, "complete onboarding before posting a vacancy")
		}
		return err
	}

	var req createVacancyReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	inputType, ok := wizard.ParseInputType(req.InputType)
	if !ok {
		return fail200(c, "input_type must be self_service or we_do_it_for_you")
	}

	productID, err := uuid.Parse(strings.TrimSpace(req.ProductID))
	if err != nil {
		return fail200(c, "select a package to continue", fiber.Map{
			"errors": wizard.Errors{"package": "select a package to continue"},
		})
	}
	var p models.Product
	if err := h.DB.First(&p, "id = ? AND type = ? AND active = true", productID, models.ProductPackage).Error; err != nil {
		return fail200(c, "selected package does not exist")
	}

	upsells, _ := json.Marshal(dedupStrings(req.UpsellIDs))

	v := models.Vacancy{
		EmployerID:  e.ID,
		Status:      models.VacancyDraft,
		InputType:   string(inputType),
		CurrentStep: int(wizard.StepContent), // created via step-1 Next
		ProductID:   &productID,
		UpsellIDs:   datatypes.JSON(upsells),
	}
	v.LastSnapshot = wizard.Snapshot(draftOf(&v))

	if err := h.DB.Create(&v).Error; err != nil {
		return fail500(c, "failed to create vacancy")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "vacancy created",
		"data":    v,
		"wizard":  h.wizardBlock(&v, 0),
	})
}

func (h *VacancyHandler) Get(c *fiber.Ctx) error {
	_, e, err := getEmployerUser(h.DB, c)
	if err != nil {
		return err
	}
	v, err := h.ownVacancy(c, e)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    v,
		"wizard":  h.wizardBlock(v, stepHint(c)),
	})
}

type saveVacancyReq struct {
	ProductID      *string  `json:"product_id"`
	UpsellIDs      []string `json:"upsell_ids"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Location       string   `json:"location"`
	EmploymentType string   `json:"employment_type"`
	EducationLevel string   `json:"education_level"`
	SalaryMin      int      `json:"salary_min"`
	SalaryMax      int      `json:"salary_max"`
	ContactName    string   `json:"contact_name"`
	ContactEmail   string   `json:"contact_email"`
	ContactPhone   string   `json:"contact_phone"`
	Extras         fiber.Map `json:"extras"`
}

// Save is the auto-save PATCH. The body replaces the draft wholesale (the
// client always sends its full working copy, never a per-field diff). When
// the serialized draft equals the last persisted snapshot, nothing is
// written and the client just clears its dirty flag.
func (h *VacancyHandler) Save(c *fiber.Ctx) error {
	_, e, err := getEmployerUser(h.DB, c)
	if err != nil {
		return err
	}
	v, err := h.ownVacancy(c, e)
	if err != nil {
		return err
	}
	if v.Status.ReadOnly() {
		return fail200(c, "vacancy is under review or published and can no longer be edited")
	}

	var req saveVacancyReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	// the package is immutable once submitted
	if req.ProductID != nil && v.SubmittedAt == nil {
		productID, err := uuid.Parse(strings.TrimSpace(*req.ProductID))
		if err != nil {
			return fail200(c, "product_id is not a valid id")
		}
		var p models.Product
		if err := h.DB.First(&p, "id = ? AND type = ? AND active = true", productID, models.ProductPackage).Error; err != nil {
			return fail200(c, "selected package does not exist")
		}
		v.ProductID = &productID
	}
	if req.UpsellIDs != nil {
		upsells, _ := json.Marshal(dedupStrings(req.UpsellIDs))
		v.UpsellIDs = datatypes.JSON(upsells)
	}

	v.Title = strings.TrimSpace(req.Title)
	v.Description = strings.TrimSpace(req.Description)
	v.Location = strings.TrimSpace(req.Location)
	v.EmploymentType = strings.TrimSpace(req.EmploymentType)
	v.EducationLevel = strings.TrimSpace(req.EducationLevel)
	v.SalaryMin = req.SalaryMin
	v.SalaryMax = req.SalaryMax
	v.ContactName = strings.TrimSpace(req.ContactName)
	v.ContactEmail = strings.TrimSpace(req.ContactEmail)
	// phone numbers are stored as entered, only trimmed
	v.ContactPhone = strings.TrimSpace(req.ContactPhone)
	if req.Extras != nil {
		extras, _ := json.Marshal(req.Extras)
		v.Extras = datatypes.JSON(extras)
	}

	snap := wizard.Snapshot(draftOf(v))
	if snap == v.LastSnapshot {
		return c.JSON(fiber.Map{
			"success": true,
			"message": "unchanged",
			"saved":   false,
			"wizard":  h.wizardBlock(v, 0),
		})
	}

	v.LastSnapshot = snap
	v.UpdatedAt = time.Now()
	if err := h.DB.Save(v).Error; err != nil {
		return fail500(c, "failed to save vacancy")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "saved",
		"saved":   true,
		"data":    v,
		"wizard":  h.wizardBlock(v, 0),
	})
}

// Advance is "Next": the current step's rule set must pass before the
// persisted step moves forward.
func (h *VacancyHandler) Advance(c *fiber.Ctx) error {
	_, e, err := getEmployerUser(h.DB, c)
	if err != nil {
		return err
	}
	v, err := h.ownVacancy(c, e)
	if err != nil {
		return err
	}
	if v.Status.ReadOnly() {
		return fail200(c, "vacancy is under review or published and can no longer be edited")
	}

	step := wizard.Step(v.CurrentStep)
	errs := wizard.ValidateStep(step, h.inputType(v), draftOf(v))
	if len(errs) > 0 {
		return fail200(c, "fix the highlighted fields to continue", fiber.Map{"errors": errs})
	}

	v.CurrentStep = int(wizard.Bump(step, wizard.Next(step)))
	v.UpdatedAt = time.Now()
	if err := h.DB.Save(v).Error; err != nil {
		return fail500(c, "failed to advance")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    v,
		"wizard":  h.wizardBlock(v, wizard.Step(v.CurrentStep)),
	})
}

// Previous is an unconditional bounded decrement; edit-mode wizards never go
// below the content step.
func (h *VacancyHandler) Previous(c *fiber.Ctx) error {
	_, e, err := getEmployerUser(h.DB, c)
	if err != nil {
		return err
	}
	v, err := h.ownVacancy(c, e)
	if err != nil {
		return err
	}
	if v.Status.ReadOnly() {
		return fail200(c, "vacancy is under review or published and can no longer be edited")
	}

	v.CurrentStep = int(wizard.Previous(wizard.Step(v.CurrentStep), v.SubmittedAt != nil))
	v.UpdatedAt = time.Now()
	if err := h.DB.Save(v).Error; err != nil {
		return fail500(c, "failed to update step")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    v,
		"wizard":  h.wizardBlock(v, wizard.Step(v.CurrentStep)),
	})
}

type jumpReq struct {
	Step int `json:"step"`
}

// JumpTo moves to a completed step or the immediate successor; anything else
// is a no-op, not an error.
func (h *VacancyHandler) JumpTo(c *fiber.Ctx) error {
	_, e, err := getEmployerUser(h.DB, c)
	if err != nil {
		return err
	}
	v, err := h.ownVacancy(c, e)
	if err != nil {
		return err
	}
	if v.Status.ReadOnly() {
		return fail200(c, "vacancy is under review or published and can no longer be edited")
	}

	var req jumpReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	target, err := wizard.ParseStep(req.Step)
	if err != nil {
		return fail200(c, "unknown step")
	}

	isExisting := v.SubmittedAt != nil
	completed := wizard.Completed(h.inputType(v), draftOf(v), isExisting)
	moved := false
	if wizard.CanJump(wizard.Step(v.CurrentStep), completed, target, isExisting) {
		v.CurrentStep = int(target)
		v.UpdatedAt = time.Now()
		if err := h.DB.Save(v).Error; err != nil {
			return fail500(c, "failed to update step")
		}
		moved = true
	}

	return c.JSON(fiber.Map{
		"success": true,
		"moved":   moved,
		"data":    v,
		"wizard":  h.wizardBlock(v, wizard.Step(v.CurrentStep)),
	})
}

// Cost feeds the checkout sidebar: pure derivation from the current
// selection and balance, no side effects.
func (h *VacancyHandler) Cost(c *fiber.Ctx) error {
	_, e, err := getEmployerUser(h.DB, c)
	if err != nil {
		return err
	}
	v, err := h.ownVacancy(c, e)
	if err != nil {
		return err
	}

	pkg, ups, err := h.loadSelection(v)
	if err != nil {
		return fail200(c, "select a package to see the costs")
	}
	balance, err := h.Credits.Balance(e.ID)
	if err != nil {
		return fail500(c, "failed to load credit balance")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    wizard.Cost(pkg, ups, int(balance)),
	})
}

// Submit is the terminal transition. With enough credits the total is
// debited; a shortfall is allowed only when the employer's invoice details
// are complete, in which case the missing credits are invoiced at the
// proportional shortfall price and the posting proceeds.
func (h *VacancyHandler) Submit(c *fiber.Ctx) error {
	_, e, err := getEmployerUser(h.DB, c)
	if err != nil {
		return err
	}
	v, err := h.ownVacancy(c, e)
	if err != nil {
		return err
	}
	if v.Status.ReadOnly() {
		return fail200(c, "vacancy has already been submitted")
	}

	inputType := h.inputType(v)
	draft := draftOf(v)
	if errs := wizard.ValidateStep(wizard.StepContent, inputType, draft); len(errs) > 0 {
		return fail200(c, "fix the highlighted fields before submitting", fiber.Map{"errors": errs})
	}

	pkg, ups, err := h.loadSelection(v)
	if err != nil {
		return fail200(c, "select a package before submitting", fiber.Map{
			"errors": wizard.Errors{"package": "select a package to continue"},
		})
	}

	balance, err := h.Credits.Balance(e.ID)
	if err != nil {
		return fail500(c, "failed to load credit balance")
	}
	cost := wizard.Cost(pkg, ups, int(balance))

	// reject before touching anything: the submit endpoint must stay
	// side-effect free on this path
	if cost.Shortage > 0 && !e.InvoiceDetailsComplete() {
		return fail200(c, "missing invoice details", fiber.Map{
			"missing_invoice_details": true,
			"cost":                    cost,
		})
	}

	tx := h.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if cost.Shortage > 0 {
		if err := h.Credits.Purchase(tx, e.ID, int64(cost.Shortage), v.ID, "invoiced credit shortfall for vacancy submission"); err != nil {
			tx.Rollback()
			return fail500(c, "failed to invoice credit shortfall")
		}
	}
	if err := h.Credits.Debit(tx, e.ID, int64(cost.TotalCredits), v.ID, "vacancy submission"); err != nil {
		tx.Rollback()
		return fail200(c, "insufficient credits")
	}

	now := time.Now()
	v.Status = models.VacancyAwaitingApproval
	v.SubmittedAt = &now
	v.CurrentStep = int(wizard.StepSubmit)
	v.UpdatedAt = now
	if err := tx.Save(v).Error; err != nil {
		tx.Rollback()
		return fail500(c, "failed to submit vacancy")
	}

	if err := tx.Commit().Error; err != nil {
		return fail500(c, "failed to commit")
	}

	h.notifyStatus(c, v, "vacancy submitted for review")

	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "vacancy submitted",
		"data":     v,
		"cost":     cost,
		"redirect": h.FrontendBaseURL + "/vacancies?submitted=" + v.ID.String(),
	})
}

// Sync re-reads server state so a reloading client can rebuild its wizard
// from the persisted record instead of trusting its own query string.
func (h *VacancyHandler) Sync(c *fiber.Ctx) error {
	_, e, err := getEmployerUser(h.DB, c)
	if err != nil {
		return err
	}
	v, err := h.ownVacancy(c, e)
	if err != nil {
		return err
	}

	block := h.wizardBlock(v, stepHint(c))
	// persist the clamped step so the record and the client agree
	if step, ok := block["step"].(wizard.Step); ok && int(step) != v.CurrentStep && !v.Status.ReadOnly() {
		v.CurrentStep = int(step)
		v.UpdatedAt = time.Now()
		if err := h.DB.Save(v).Error; err != nil {
			return fail500(c, "failed to sync")
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    v,
		"wizard":  block,
	})
}

func (h *VacancyHandler) notifyStatus(c *fiber.Ctx, v *models.Vacancy, message string) {
	ev := notify.Event{
		Type:       "vacancy_status",
		VacancyID:  v.ID,
		EmployerID: v.EmployerID,
		Status:     string(v.Status),
		Message:    message,
	}
	h.Hub.SendToEmployer(v.EmployerID, ev)
	if h.RDB != nil {
		notify.Publish(c.Context(), h.RDB, ev)
	}
}

// ========= admin moderation =========

// AdminRoutes mounts the review queue worked by platform staff.
func (h *VacancyHandler) AdminRoutes(r fiber.Router, adminMiddleware ...fiber.Handler) {
	g := r.Group("/admin/vacancies", adminMiddleware...)
	g.Get("/", h.AdminList)
	g.Post("/:id/approve", h.Approve)
	g.Post("/:id/reject", h.Reject)
}

// canModerate gates the review decisions: only a submission still waiting for
// review can be approved or rejected.
func canModerate(s models.VacancyStatus) bool {
	return s == models.VacancyAwaitingApproval
}

func (h *VacancyHandler) adminVacancy(c *fiber.Ctx) (*models.Vacancy, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid vacancy id")
	}
	var v models.Vacancy
	if err := h.DB.First(&v, "id = ?", id).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "vacancy not found")
	}
	return &v, nil
}

func (h *VacancyHandler) AdminList(c *fiber.Ctx) error {
	status := strings.TrimSpace(c.Query("status", string(models.VacancyAwaitingApproval)))
	var vacancies []models.Vacancy
	if err := h.DB.Where("status = ?", status).Order("submitted_at ASC").Limit(200).Find(&vacancies).Error; err != nil {
		return fail500(c, "failed to load vacancies")
	}
	return c.JSON(fiber.Map{"success": true, "data": vacancies})
}

// Approve publishes a reviewed vacancy.
func (h *VacancyHandler) Approve(c *fiber.Ctx) error {
	v, err := h.adminVacancy(c)
	if err != nil {
		return err
	}
	if !canModerate(v.Status) {
		return fail200(c, "vacancy is not awaiting approval")
	}

	v.Status = models.VacancyPublished
	v.UpdatedAt = time.Now()
	if err := h.DB.Save(v).Error; err != nil {
		return fail500(c, "failed to publish vacancy")
	}

	h.notifyStatus(c, v, "vacancy approved and published")
	return c.JSON(fiber.Map{"success": true, "message": "vacancy published", "data": v})
}

type rejectReq struct {
	Reason string `json:"reason"`
}

// Reject returns a reviewed vacancy to draft and refunds the credits spent on
// the submission, so the employer can revise and resubmit without paying
// twice.
func (h *VacancyHandler) Reject(c *fiber.Ctx) error {
	v, err := h.adminVacancy(c)
	if err != nil {
		return err
	}
	if !canModerate(v.Status) {
		return fail200(c, "vacancy is not awaiting approval")
	}

	var req rejectReq
	_ = c.BodyParser(&req)

	tx := h.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	spent, err := h.spentOn(tx, v)
	if err != nil {
		tx.Rollback()
		return fail500(c, "failed to read credit ledger")
	}
	if spent > 0 {
		if err := h.Credits.Refund(tx, v.EmployerID, spent, v.ID, "refund for rejected vacancy"); err != nil {
			tx.Rollback()
			return fail500(c, "failed to refund credits")
		}
	}

	v.Status = models.VacancyDraft
	v.SubmittedAt = nil
	v.UpdatedAt = time.Now()
	if err := tx.Save(v).Error; err != nil {
		tx.Rollback()
		return fail500(c, "failed to reject vacancy")
	}
	if err := tx.Commit().Error; err != nil {
		return fail500(c, "failed to commit")
	}

	h.notifyStatus(c, v, rejectMessage(req.Reason))
	return c.JSON(fiber.Map{"success": true, "message": "vacancy rejected", "data": v})
}

func rejectMessage(reason string) string {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return "vacancy rejected, credits refunded"
	}
	return "vacancy rejected: " + reason
}

// spentOn is the net amount debited against this vacancy, debits minus any
// earlier refunds.
func (h *VacancyHandler) spentOn(tx *gorm.DB, v *models.Vacancy) (int64, error) {
	var debited, refunded int64
	if err := tx.Model(&models.CreditTransaction{}).
		Where("reference_id = ? AND type = ?", v.ID, models.CreditTrxDebit).
		Select("COALESCE(SUM(amount), 0)").Scan(&debited).Error; err != nil {
		return 0, err
	}
	if err := tx.Model(&models.CreditTransaction{}).
		Where("reference_id = ? AND type = ?", v.ID, models.CreditTrxRefund).
		Select("COALESCE(SUM(amount), 0)").Scan(&refunded).Error; err != nil {
		return 0, err
	}
	return debited - refunded, nil
}

func dedupStrings(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]bool{}
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
