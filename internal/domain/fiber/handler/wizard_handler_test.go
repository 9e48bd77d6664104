package handler

import (
	"net/http"
	"testing"

	"github.com/fadilmartias/careers-portal/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeProfile() map[string]any {
	return map[string]any{
		"firstName":   "Thandi",
		"lastName":    "Mokoena",
		"email":       "thandi@example.co.za",
		"phoneNumber": "+27 11 555 0100",
		"city":        "Johannesburg",
		"country":     "South Africa",
		"experiences": []map[string]any{{"startDate": "2021-03-01", "current": true, "companyName": "Acme Logistics", "jobTitle": "Forklift Operator"}},
		"educations":  []map[string]any{{"institutionName": "Sedibeng TVET", "startDate": "2017-01-15", "endDate": "2019-11-30"}},
		"languages":   []map[string]any{{"language": "zulu", "proficiency": "native"}},
	}
}

func TestWizardIssuesDraftID(t *testing.T) {
	ts := newTestServer(t)

	res := ts.do(t, request{method: http.MethodGet, path: "/api/wizard"})
	require.Equal(t, http.StatusOK, res.status)
	id := res.header.Get(DraftIDHeader)
	require.NotEmpty(t, id)
	assert.Equal(t, id, res.json.Get("data.draftId").String())
	assert.EqualValues(t, 1, res.json.Get("data.currentStep").Int())
	assert.Len(t, res.json.Get("data.draft.experiences").Array(), 1)

	again := ts.do(t, request{method: http.MethodGet, path: "/api/wizard", draftID: id})
	assert.Equal(t, id, again.header.Get(DraftIDHeader))
	assert.Equal(t, 1, ts.sessions.Len())
}

func TestWizardNextReportsStepErrors(t *testing.T) {
	ts := newTestServer(t)
	id := ts.do(t, request{method: http.MethodGet, path: "/api/wizard"}).header.Get(DraftIDHeader)

	profile := completeProfile()
	profile["email"] = "not-an-email"
	res := ts.do(t, request{method: http.MethodPatch, path: "/api/wizard/draft", draftID: id, body: profile})
	require.Equal(t, http.StatusOK, res.status)

	res = ts.do(t, request{method: http.MethodPost, path: "/api/wizard/next", draftID: id})
	require.Equal(t, http.StatusUnprocessableEntity, res.status)
	assert.Equal(t, validation.MsgEmailInvalid, res.json.Get("details.1.email").String())

	res = ts.do(t, request{method: http.MethodPatch, path: "/api/wizard/draft", draftID: id, body: map[string]any{"email": "thandi@example.co.za"}})
	require.Equal(t, http.StatusOK, res.status)
	res = ts.do(t, request{method: http.MethodPost, path: "/api/wizard/next", draftID: id})
	require.Equal(t, http.StatusOK, res.status)
	assert.EqualValues(t, 2, res.json.Get("data.currentStep").Int())
	assert.Empty(t, res.json.Get("data.errors").Map())

	res = ts.do(t, request{method: http.MethodPost, path: "/api/wizard/previous", draftID: id})
	assert.EqualValues(t, 1, res.json.Get("data.currentStep").Int())
}

func TestWizardNavigation(t *testing.T) {
	ts := newTestServer(t)
	id := ts.do(t, request{method: http.MethodGet, path: "/api/wizard"}).header.Get(DraftIDHeader)

	res := ts.do(t, request{method: http.MethodPost, path: "/api/wizard/goto/3", draftID: id})
	assert.Equal(t, http.StatusConflict, res.status)
	res = ts.do(t, request{method: http.MethodPost, path: "/api/wizard/goto/9", draftID: id})
	assert.Equal(t, http.StatusBadRequest, res.status)
	res = ts.do(t, request{method: http.MethodPost, path: "/api/wizard/goto/profile", draftID: id})
	assert.Equal(t, http.StatusOK, res.status)

	res = ts.do(t, request{method: http.MethodGet, path: "/api/wizard/steps/documents", draftID: id})
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "documents", res.json.Get("meta.name").String())
}

func TestWizardEntryEditing(t *testing.T) {
	ts := newTestServer(t)
	id := ts.do(t, request{method: http.MethodGet, path: "/api/wizard"}).header.Get(DraftIDHeader)

	res := ts.do(t, request{method: http.MethodPost, path: "/api/wizard/languages", draftID: id})
	require.Equal(t, http.StatusOK, res.status)
	assert.Len(t, res.json.Get("data.draft.languages").Array(), 2)

	res = ts.do(t, request{method: http.MethodDelete, path: "/api/wizard/languages/0", draftID: id})
	assert.Len(t, res.json.Get("data.draft.languages").Array(), 1)
	res = ts.do(t, request{method: http.MethodDelete, path: "/api/wizard/languages/0", draftID: id})
	require.Equal(t, http.StatusOK, res.status)
	assert.Len(t, res.json.Get("data.draft.languages").Array(), 1)

	res = ts.do(t, request{method: http.MethodPost, path: "/api/wizard/hobbies", draftID: id})
	assert.Equal(t, http.StatusBadRequest, res.status)
	res = ts.do(t, request{method: http.MethodPut, path: "/api/wizard/educations/5", draftID: id, body: map[string]any{"institutionName": "Wits"}})
	assert.Equal(t, http.StatusNotFound, res.status)

	exp := map[string]any{"startDate": "2019-01-01", "endDate": "2020-06-30", "companyName": "Acme", "jobTitle": "Clerk"}
	res = ts.do(t, request{method: http.MethodPut, path: "/api/wizard/experiences/0", draftID: id, body: exp})
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "2020-06-30", res.json.Get("data.draft.experiences.0.endDate").String())

	res = ts.do(t, request{method: http.MethodPut, path: "/api/wizard/experiences/0/current", draftID: id, body: map[string]any{"current": true}})
	require.Equal(t, http.StatusOK, res.status)
	assert.True(t, res.json.Get("data.draft.experiences.0.current").Bool())
	assert.False(t, res.json.Get("data.draft.experiences.0.endDate").Exists())
}

func TestWizardAttachDocument(t *testing.T) {
	ts := newTestServer(t)
	id := ts.do(t, request{method: http.MethodGet, path: "/api/wizard"}).header.Get(DraftIDHeader)

	res := ts.do(t, request{method: http.MethodPost, path: "/api/wizard/documents/cv", draftID: id,
		body: fileUpload(t, "thandi-cv.pdf", "application/pdf", []byte("%PDF-1.7"))})
	require.Equal(t, http.StatusCreated, res.status)
	assert.Equal(t, "thandi-cv.pdf", res.json.Get("data.name").String())
	assert.EqualValues(t, 8, res.json.Get("data.size").Int())
	assert.EqualValues(t, 1700000000000, res.json.Get("data.lastModified").Int())

	state := ts.do(t, request{method: http.MethodGet, path: "/api/wizard", draftID: id})
	assert.True(t, state.json.Get("data.cvAttached").Bool())
	assert.Equal(t, "thandi-cv.pdf", state.json.Get("data.draft.cv.name").String())
	assert.Equal(t, gjsonNull, state.json.Get("data.draft.cv.file").Type.String())

	step := ts.do(t, request{method: http.MethodGet, path: "/api/wizard/steps/5", draftID: id})
	assert.Equal(t, gjsonNull, step.json.Get("data.cv.file").Type.String())

	res = ts.do(t, request{method: http.MethodPost, path: "/api/wizard/documents/coverLetter", draftID: id,
		body: fileUpload(t, "photo.png", "image/png", []byte("png"))})
	assert.Equal(t, http.StatusUnsupportedMediaType, res.status)

	res = ts.do(t, request{method: http.MethodPost, path: "/api/wizard/documents/coverLetter", draftID: id,
		body: fileUpload(t, "photo.png", "application/octet-stream", []byte("png"))})
	assert.Equal(t, http.StatusUnsupportedMediaType, res.status)

	res = ts.do(t, request{method: http.MethodPost, path: "/api/wizard/documents/cover-letter", draftID: id,
		body: fileUpload(t, "letter.txt", "text/plain", make([]byte, testMaxUpload+1))})
	assert.Equal(t, http.StatusRequestEntityTooLarge, res.status)

	res = ts.do(t, request{method: http.MethodDelete, path: "/api/wizard/documents/cv", draftID: id})
	require.Equal(t, http.StatusOK, res.status)
	assert.False(t, res.json.Get("data.cvAttached").Bool())
	assert.Equal(t, gjsonNull, res.json.Get("data.draft.cv").Type.String())
}

const gjsonNull = "Null"

func TestWizardAttachGenericContentType(t *testing.T) {
	ts := newTestServer(t)
	id := ts.do(t, request{method: http.MethodGet, path: "/api/wizard"}).header.Get(DraftIDHeader)

	res := ts.do(t, request{method: http.MethodPost, path: "/api/wizard/documents/cv", draftID: id,
		body: fileUpload(t, "thandi-cv.docx", "application/octet-stream", []byte("PK\x03\x04"))})
	require.Equal(t, http.StatusCreated, res.status)
	assert.Equal(t, "thandi-cv.docx", res.json.Get("data.name").String())
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", res.json.Get("data.type").String())
}

func TestWizardSubmit(t *testing.T) {
	ts := newTestServer(t)
	id := ts.do(t, request{method: http.MethodGet, path: "/api/wizard"}).header.Get(DraftIDHeader)

	res := ts.do(t, request{method: http.MethodPost, path: "/api/wizard/submit", draftID: id})
	require.Equal(t, http.StatusUnprocessableEntity, res.status)
	assert.Equal(t, validation.MsgFirstNameRequired, res.json.Get("details.1.firstName").String())
	assert.Equal(t, validation.MsgCVRequired, res.json.Get("details.5.cv").String())

	ts.do(t, request{method: http.MethodPatch, path: "/api/wizard/draft", draftID: id, body: completeProfile()})
	ts.do(t, request{method: http.MethodPost, path: "/api/wizard/documents/cv", draftID: id,
		body: fileUpload(t, "thandi-cv.pdf", "application/pdf", []byte("%PDF-1.7"))})

	res = ts.do(t, request{method: http.MethodPost, path: "/api/wizard/submit", draftID: id, token: userToken})
	require.Equal(t, http.StatusCreated, res.status, string(res.raw))
	assert.Equal(t, "Thandi Mokoena", res.json.Get("data.applicantName").String())
	assert.NotEmpty(t, res.json.Get("data.applicationId").String())

	require.Len(t, ts.apps.apps, 1)
	app := ts.apps.apps[0]
	require.NotNil(t, app.UserID)
	assert.Equal(t, plainUser.ID, *app.UserID)
	require.NotNil(t, app.CVFileURL)
	assert.Nil(t, app.CoverLetterFileURL)
	assert.Len(t, ts.storage.objects, 1)

	state := ts.do(t, request{method: http.MethodGet, path: "/api/wizard", draftID: id})
	assert.Empty(t, state.json.Get("data.draft.firstName").String())
	assert.EqualValues(t, 1, state.json.Get("data.currentStep").Int())
}
