package int

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Registration", func() {
	BeforeEach(func() {
		cleanupMongo()
	})

	Specify("happy path", func() {
		eventID := createEvent(5)
		token := registerUser(1)

		res, body := doRequest(http.MethodPost, "/events/"+eventID+"/registrations", token, nil)
		Expect(res.StatusCode).To(Equal(http.StatusCreated))
		Expect(body["status"]).To(Equal("pending"))
		Expect(body["event_id"]).To(Equal(eventID))

		res, ev := doRequest(http.MethodGet, "/events/"+eventID, "", nil)
		Expect(res.StatusCode).To(Equal(http.StatusOK))
		Expect(ev["registered_count"]).To(BeNumerically("==", 1))
	})

	Specify("sad path - duplicate registration", func() {
		eventID := createEvent(5)
		token := registerUser(1)

		res, _ := doRequest(http.MethodPost, "/events/"+eventID+"/registrations", token, nil)
		Expect(res.StatusCode).To(Equal(http.StatusCreated))

		res, body := doRequest(http.MethodPost, "/events/"+eventID+"/registrations", token, nil)
		Expect(res.StatusCode).To(Equal(http.StatusConflict))
		Expect(body["error"]).To(ContainSubstring("already registered for event"))
	})

	Specify("sad path - event full", func() {
		eventID := createEvent(1)

		res, _ := doRequest(http.MethodPost, "/events/"+eventID+"/registrations", registerUser(1), nil)
		Expect(res.StatusCode).To(Equal(http.StatusCreated))

		res, body := doRequest(http.MethodPost, "/events/"+eventID+"/registrations", registerUser(2), nil)
		Expect(res.StatusCode).To(Equal(http.StatusConflict))
		Expect(body["error"]).To(ContainSubstring("event is full"))
	})

	Specify("admin approves a registration it owns", func() {
		eventID := createEvent(5)
		token := registerUser(1)

		res, created := doRequest(http.MethodPost, "/events/"+eventID+"/registrations", token, nil)
		Expect(res.StatusCode).To(Equal(http.StatusCreated))
		regID, _ := created["id"].(string)

		res, body := doRequest(http.MethodPatch, "/registrations/"+regID, adminToken, map[string]interface{}{
			"status": "approved",
		})
		Expect(res.StatusCode).To(Equal(http.StatusOK))
		Expect(body["status"]).To(Equal("approved"))

		res, regs := doRequestList(http.MethodGet, "/users/me/registrations", token)
		Expect(res.StatusCode).To(Equal(http.StatusOK))
		Expect(regs).To(HaveLen(1))
		Expect(regs[0]["status"]).To(Equal("approved"))
	})
})
