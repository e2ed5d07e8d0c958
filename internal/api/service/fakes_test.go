package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"regintel/internal/api/repository"
	"regintel/internal/entity"
	"regintel/pkg/logger"
)

func testLogger() *logger.Logger {
	return &logger.Logger{Logger: zap.NewNop()}
}

type fakeCompanyRepo struct {
	companies    map[string]*entity.Company
	underPress   []entity.Company
	scoreUpdates map[string]int
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{
		companies:    make(map[string]*entity.Company),
		scoreUpdates: make(map[string]int),
	}
}

func (f *fakeCompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	if company.ID == "" {
		company.ID = "company-" + company.Name
	}
	f.companies[company.ID] = company
	return nil
}

func (f *fakeCompanyRepo) FindByID(ctx context.Context, id, userID string) (*entity.Company, error) {
	company, ok := f.companies[id]
	if !ok || company.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *company
	return &clone, nil
}

func (f *fakeCompanyRepo) FindAll(ctx context.Context, userID string, filter repository.CompanyFilter) ([]entity.Company, error) {
	var out []entity.Company
	for _, company := range f.companies {
		if company.UserID == userID {
			out = append(out, *company)
		}
	}
	return out, nil
}

func (f *fakeCompanyRepo) Update(ctx context.Context, company *entity.Company) error {
	f.companies[company.ID] = company
	return nil
}

func (f *fakeCompanyRepo) UpdateScore(ctx context.Context, id string, score int) error {
	f.scoreUpdates[id] = score
	if company, ok := f.companies[id]; ok {
		company.PressureScore = score
	}
	return nil
}

func (f *fakeCompanyRepo) Delete(ctx context.Context, id, userID string) error {
	delete(f.companies, id)
	return nil
}

func (f *fakeCompanyRepo) FindUnderPressure(ctx context.Context, userID string, minPressure, minExecVulnerability, limit int) ([]entity.Company, error) {
	return f.underPress, nil
}

type fakeExecutiveRepo struct {
	execs     map[string]*entity.Executive
	byCompany map[string][]entity.Executive
	updated   []entity.Executive
}

func newFakeExecutiveRepo() *fakeExecutiveRepo {
	return &fakeExecutiveRepo{
		execs:     make(map[string]*entity.Executive),
		byCompany: make(map[string][]entity.Executive),
	}
}

func (f *fakeExecutiveRepo) Create(ctx context.Context, exec *entity.Executive) error {
	if exec.ID == "" {
		exec.ID = "exec-" + exec.Name
	}
	f.execs[exec.ID] = exec
	return nil
}

func (f *fakeExecutiveRepo) FindByID(ctx context.Context, id, userID string) (*entity.Executive, error) {
	exec, ok := f.execs[id]
	if !ok || exec.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *exec
	return &clone, nil
}

func (f *fakeExecutiveRepo) FindAll(ctx context.Context, userID string, filter repository.ExecutiveFilter) ([]entity.Executive, error) {
	var out []entity.Executive
	for _, exec := range f.execs {
		if exec.UserID == userID {
			out = append(out, *exec)
		}
	}
	return out, nil
}

func (f *fakeExecutiveRepo) FindByCompany(ctx context.Context, companyID string) ([]entity.Executive, error) {
	return f.byCompany[companyID], nil
}

func (f *fakeExecutiveRepo) Update(ctx context.Context, exec *entity.Executive) error {
	f.execs[exec.ID] = exec
	return nil
}

func (f *fakeExecutiveRepo) UpdateScore(ctx context.Context, id string, score int) error {
	if exec, ok := f.execs[id]; ok {
		exec.VulnerabilityScore = score
	}
	return nil
}

func (f *fakeExecutiveRepo) Delete(ctx context.Context, id, userID string) error {
	delete(f.execs, id)
	return nil
}

func (f *fakeExecutiveRepo) FindVulnerableUpdatedBetween(ctx context.Context, userID string, start, end time.Time, minScore, limit int) ([]entity.Executive, error) {
	return f.updated, nil
}

type fakeOpportunityRepo struct {
	opps    map[string]*entity.Opportunity
	created []entity.Opportunity
}

func newFakeOpportunityRepo() *fakeOpportunityRepo {
	return &fakeOpportunityRepo{opps: make(map[string]*entity.Opportunity)}
}

func (f *fakeOpportunityRepo) Create(ctx context.Context, opp *entity.Opportunity) error {
	if opp.ID == "" {
		opp.ID = "opp-" + opp.Title
	}
	f.opps[opp.ID] = opp
	return nil
}

func (f *fakeOpportunityRepo) FindByID(ctx context.Context, id, userID string) (*entity.Opportunity, error) {
	opp, ok := f.opps[id]
	if !ok || opp.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *opp
	return &clone, nil
}

func (f *fakeOpportunityRepo) FindAll(ctx context.Context, userID string, filter repository.OpportunityFilter) ([]entity.Opportunity, error) {
	var out []entity.Opportunity
	for _, opp := range f.opps {
		if opp.UserID == userID {
			out = append(out, *opp)
		}
	}
	return out, nil
}

func (f *fakeOpportunityRepo) Update(ctx context.Context, opp *entity.Opportunity) error {
	f.opps[opp.ID] = opp
	return nil
}

func (f *fakeOpportunityRepo) UpdateScore(ctx context.Context, id string, score int) error {
	if opp, ok := f.opps[id]; ok {
		opp.OpportunityScore = score
	}
	return nil
}

func (f *fakeOpportunityRepo) Delete(ctx context.Context, id, userID string) error {
	delete(f.opps, id)
	return nil
}

func (f *fakeOpportunityRepo) FindCreatedBetween(ctx context.Context, userID string, start, end time.Time, limit int) ([]entity.Opportunity, error) {
	return f.created, nil
}

type fakeActivityRepo struct {
	activities []entity.CompetitorActivity
}

func (f *fakeActivityRepo) Create(ctx context.Context, activity *entity.CompetitorActivity) error {
	if activity.ID == "" {
		activity.ID = "activity-" + activity.CompetitorName
	}
	f.activities = append(f.activities, *activity)
	return nil
}

func (f *fakeActivityRepo) FindByID(ctx context.Context, id, userID string) (*entity.CompetitorActivity, error) {
	for i := range f.activities {
		if f.activities[i].ID == id {
			clone := f.activities[i]
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeActivityRepo) FindAll(ctx context.Context, userID string, filter repository.CompetitorActivityFilter) ([]entity.CompetitorActivity, error) {
	return f.activities, nil
}

func (f *fakeActivityRepo) Update(ctx context.Context, activity *entity.CompetitorActivity) error {
	for i := range f.activities {
		if f.activities[i].ID == activity.ID {
			f.activities[i] = *activity
		}
	}
	return nil
}

func (f *fakeActivityRepo) Delete(ctx context.Context, id, userID string) error {
	return nil
}

func (f *fakeActivityRepo) FindByActivityDateBetween(ctx context.Context, userID string, start, end time.Time, limit int) ([]entity.CompetitorActivity, error) {
	return f.activities, nil
}

type fakeProcurementRepo struct {
	procs []entity.Procurement
}

func (f *fakeProcurementRepo) Create(ctx context.Context, proc *entity.Procurement) error {
	if proc.ID == "" {
		proc.ID = "proc-" + proc.Title
	}
	f.procs = append(f.procs, *proc)
	return nil
}

func (f *fakeProcurementRepo) FindByID(ctx context.Context, id, userID string) (*entity.Procurement, error) {
	for i := range f.procs {
		if f.procs[i].ID == id {
			clone := f.procs[i]
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProcurementRepo) FindAll(ctx context.Context, userID string, filter repository.ProcurementFilter) ([]entity.Procurement, error) {
	return f.procs, nil
}

func (f *fakeProcurementRepo) Update(ctx context.Context, proc *entity.Procurement) error {
	for i := range f.procs {
		if f.procs[i].ID == proc.ID {
			f.procs[i] = *proc
		}
	}
	return nil
}

func (f *fakeProcurementRepo) Delete(ctx context.Context, id, userID string) error {
	return nil
}

func (f *fakeProcurementRepo) FindOpenWithDeadlineBetween(ctx context.Context, userID string, start, end time.Time, limit int) ([]entity.Procurement, error) {
	return f.procs, nil
}

type fakeAlertRepo struct {
	created []entity.Alert
	unread  []entity.Alert
}

func (f *fakeAlertRepo) Create(ctx context.Context, alert *entity.Alert) error {
	f.created = append(f.created, *alert)
	return nil
}

func (f *fakeAlertRepo) FindAll(ctx context.Context, userID string, filter repository.AlertFilter, limit int) ([]entity.Alert, error) {
	return f.unread, nil
}

func (f *fakeAlertRepo) MarkRead(ctx context.Context, id, userID string) error {
	return nil
}

func (f *fakeAlertRepo) Delete(ctx context.Context, id, userID string) error {
	return nil
}

func (f *fakeAlertRepo) FindUnreadCreatedBetween(ctx context.Context, userID string, start, end time.Time) ([]entity.Alert, error) {
	return f.unread, nil
}

type fakeReportRepo struct {
	saved  *entity.Report
	stored *entity.Report
}

func (f *fakeReportRepo) SaveDailyBriefing(ctx context.Context, report *entity.Report, dayStart, dayEnd time.Time) error {
	f.saved = report
	return nil
}

func (f *fakeReportRepo) FindDailyBriefing(ctx context.Context, userID string, dayStart, dayEnd time.Time) (*entity.Report, error) {
	return f.stored, nil
}
