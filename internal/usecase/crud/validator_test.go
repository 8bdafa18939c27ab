package crud

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-service/internal/domain/query"
)

type widget struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Stock int    `json:"stock"`
}

func (w widget) GetID() string { return w.ID }

type widgetRules struct{}

func (widgetRules) ValidateCreate(w widget) (widget, []FieldError) {
	w.Name = strings.TrimSpace(w.Name)
	errs := ValidateEmptyFields(w, "id", "color")
	if w.Color != "" && !strings.HasPrefix(w.Color, "#") {
		errs = append(errs, FieldError{Field: "color", Message: "color format is incorrect"})
	}
	return w, errs
}

func (widgetRules) ValidateUpdate(w widget) (widget, []FieldError) {
	return w, ValidateEmptyFields(w, "color")
}

func newWidgetValidator() Validator[widget] {
	return NewValidator[widget](widgetRules{})
}

func ptr(v int) *int { return &v }

func TestValidateEmptyFields_SingleError(t *testing.T) {
	errs := ValidateEmptyFields(struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}{ID: "1", Name: ""}, "id")

	require.Len(t, errs, 1)
	assert.Equal(t, FieldError{Field: "name", Message: "name empty"}, errs[0])
}

func TestValidateEmptyFields_IgnoresNonStrings(t *testing.T) {
	errs := ValidateEmptyFields(widget{ID: "1", Name: "a", Color: "#fff"})
	assert.Empty(t, errs)
}

func TestValidateEmptyFields_ReportsEveryEmptyField(t *testing.T) {
	errs := newWidgetValidator().ValidateEmptyFields(widget{})

	require.Len(t, errs, 3)
	assert.Equal(t, "id", errs[0].Field)
	assert.Equal(t, "name", errs[1].Field)
	assert.Equal(t, "color", errs[2].Field)
}

// ==================== GET TESTS ====================

func TestGet_AccumulatesAllErrors(t *testing.T) {
	req := newWidgetValidator().Get(widget{}, ptr(150), ptr(-2), "bogus_asc")

	_, invalid := req.Resolve()
	require.NotNil(t, invalid)
	require.Len(t, invalid.Errors, 3)

	fields := []string{invalid.Errors[0].Field, invalid.Errors[1].Field, invalid.Errors[2].Field}
	assert.ElementsMatch(t, []string{"limit", "page", "bogus"}, fields)
	assert.Equal(t, "bogus is not an accepted value", invalid.Errors[2].Message)
	assert.Equal(t, "page can not be less than 0", invalid.Errors[1].Message)
}

func TestGet_LimitBounds(t *testing.T) {
	v := newWidgetValidator()

	assert.False(t, v.Get(widget{}, ptr(0), nil, "").IsValid())
	assert.False(t, v.Get(widget{}, ptr(101), nil, "").IsValid())
	assert.True(t, v.Get(widget{}, ptr(1), nil, "").IsValid())
	assert.True(t, v.Get(widget{}, ptr(100), nil, "").IsValid())
}

func TestGet_PageZeroIsAccepted(t *testing.T) {
	assert.True(t, newWidgetValidator().Get(widget{}, nil, ptr(0), "").IsValid())
}

func TestGet_PageUpperBound(t *testing.T) {
	v := newWidgetValidator()

	assert.True(t, v.Get(widget{}, ptr(query.MaxLimit), ptr(query.MaxPage), "").IsValid())

	_, invalid := v.Get(widget{}, ptr(10), ptr(query.MaxPage+1), "").Resolve()
	require.NotNil(t, invalid)
	require.Len(t, invalid.Errors, 1)
	assert.Equal(t, "page", invalid.Errors[0].Field)
	assert.Equal(t, fmt.Sprintf("page can not be more than %d", query.MaxPage), invalid.Errors[0].Message)
}

func TestGet_DefaultsAndOrder(t *testing.T) {
	req := newWidgetValidator().Get(widget{Name: "bolt"}, nil, nil, "name_asc,stock_desc,broken")

	cmd, invalid := req.Resolve()
	require.Nil(t, invalid)
	assert.Equal(t, "bolt", cmd.Filters.Filters.Name)
	assert.Equal(t, query.DefaultLimit, cmd.Filters.Limit)
	assert.Equal(t, query.DefaultPage, cmd.Filters.Page)
	assert.Equal(t, []query.OrderBy{
		{Field: "name", Direction: query.Ascending},
		{Field: "stock", Direction: query.Descending},
	}, cmd.Filters.OrderBy)
}

// ==================== ID TESTS ====================

func TestDeleteAndGetByID_EmptyID(t *testing.T) {
	v := newWidgetValidator()

	_, invalid := v.Delete("").Resolve()
	require.NotNil(t, invalid)
	assert.Equal(t, []FieldError{{Field: "id", Message: "id empty"}}, invalid.Errors)

	_, invalid = v.GetByID("").Resolve()
	require.NotNil(t, invalid)
	assert.Equal(t, []FieldError{{Field: "id", Message: "id empty"}}, invalid.Errors)

	cmd, invalid := v.GetByID("w-1").Resolve()
	assert.Nil(t, invalid)
	assert.Equal(t, "w-1", cmd.ID)
}

// ==================== CREATE / UPDATE TESTS ====================

func TestCreate_AppendsRuleErrorsAfterEmptyCheck(t *testing.T) {
	_, invalid := newWidgetValidator().Create(widget{Color: "red"}).Resolve()

	require.NotNil(t, invalid)
	assert.Equal(t, []FieldError{
		{Field: "name", Message: "name empty"},
		{Field: "color", Message: "color format is incorrect"},
	}, invalid.Errors)
}

func TestCreate_ReturnsNormalizedItem(t *testing.T) {
	cmd, invalid := newWidgetValidator().Create(widget{Name: "  gear "}).Resolve()

	require.Nil(t, invalid)
	assert.Equal(t, "gear", cmd.Item.Name)
}

func TestUpdate_RequiresID(t *testing.T) {
	_, invalid := newWidgetValidator().Update(widget{Name: "gear"}).Resolve()

	require.NotNil(t, invalid)
	assert.Equal(t, []FieldError{{Field: "id", Message: "id empty"}}, invalid.Errors)
}

func TestUpdate_Valid(t *testing.T) {
	cmd, invalid := newWidgetValidator().Update(widget{ID: "w-1", Name: "gear"}).Resolve()

	require.Nil(t, invalid)
	assert.Equal(t, "w-1", cmd.Item.ID)
}

// ==================== REQUEST OUTCOME TESTS ====================

func TestRequest_ZeroValueIsInvalid(t *testing.T) {
	var req Request[DeleteCommand]

	assert.False(t, req.IsValid())
	_, invalid := req.Resolve()
	require.NotNil(t, invalid)
	assert.NotEmpty(t, invalid.Errors)
}

func TestRequest_InvalidWithoutErrorsIsNeverEmpty(t *testing.T) {
	_, invalid := Invalid[DeleteCommand](nil).Resolve()

	require.NotNil(t, invalid)
	assert.Len(t, invalid.Errors, 1)
}

func TestRequest_MatchCallsOneBranch(t *testing.T) {
	onValid := func(c DeleteCommand) Response { return NewSuccess(StatusOK, c.ID) }
	onInvalid := func(i *InvalidRequest) Response { return NewFailure(StatusBadRequest, i.Errors) }

	assert.Equal(t, StatusOK, Valid(DeleteCommand{ID: "1"}).Match(onValid, onInvalid).StatusCode())
	assert.Equal(t, StatusBadRequest, Invalid[DeleteCommand](nil).Match(onValid, onInvalid).StatusCode())
}
