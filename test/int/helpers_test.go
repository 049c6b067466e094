package int

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func cleanupMongo() {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	m, err := mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
	Expect(err).To(BeNil())
	db := m.Database("campuseventhub")

	collections := []string{"users", "events", "registrations", "notifications"}
	for _, v := range collections {
		_, err := db.Collection(v).DeleteMany(context.Background(), bson.M{})
		Expect(err).To(BeNil())
	}
}

func doRequest(method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	var buf bytes.Buffer
	if body != nil {
		Expect(json.NewEncoder(&buf).Encode(body)).To(BeNil())
	}

	req, err := http.NewRequest(method, addr+path, &buf)
	Expect(err).To(BeNil())
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	res, err := client.Do(req)
	Expect(err).To(BeNil())
	defer res.Body.Close()

	out := map[string]interface{}{}
	_ = json.NewDecoder(res.Body).Decode(&out)
	return res, out
}

func doRequestList(method, path, token string) (*http.Response, []map[string]interface{}) {
	req, err := http.NewRequest(method, addr+path, nil)
	Expect(err).To(BeNil())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	res, err := client.Do(req)
	Expect(err).To(BeNil())
	defer res.Body.Close()

	var out []map[string]interface{}
	_ = json.NewDecoder(res.Body).Decode(&out)
	return res, out
}

func registerUser(i int) string {
	res, body := doRequest(http.MethodPost, "/auth/register", "", map[string]interface{}{
		"name":     fmt.Sprintf("user-%d", i),
		"email":    fmt.Sprintf("user-%d@hub.test", i),
		"password": "testtest",
		"college":  "Test College",
	})
	Expect(res.StatusCode).To(Equal(http.StatusCreated))
	token, _ := body["access_token"].(string)
	Expect(token).NotTo(BeEmpty())
	return token
}

func createEvent(seats int) string {
	res, body := doRequest(http.MethodPost, "/events", adminToken, map[string]interface{}{
		"title":       "Integration Event",
		"category":    "technical",
		"total_seats": seats,
	})
	Expect(res.StatusCode).To(Equal(http.StatusCreated))
	id, _ := body["id"].(string)
	Expect(id).NotTo(BeEmpty())
	return id
}
