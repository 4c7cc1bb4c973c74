package syncd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jot-format/go-jot"
	"github.com/jot-format/go-jot/ir"
	"github.com/jot-format/go-jot/parse"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s, err := New(&Spec{})
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func createTestDoc(t *testing.T, srv *httptest.Server, id, value string) DocResponse {
	t.Helper()
	body, err := json.Marshal(CreateRequest{ID: id, Value: json.RawMessage(value)})
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(srv.URL+"/v1/docs", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status %d", resp.StatusCode)
	}
	doc := DocResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestCreateAndGetDoc(t *testing.T) {
	srv := newTestServer(t)
	created := createTestDoc(t, srv, "notes", `{"title":"draft"}`)
	if created.ID != "notes" || created.Rev != 0 {
		t.Fatalf("created %+v", created)
	}
	resp, err := http.Get(srv.URL + "/v1/docs/notes")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status %d", resp.StatusCode)
	}
	doc := DocResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatal(err)
	}
	got, err := parse.Parse(doc.Value)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(got, parse.MustParse(`{"title":"draft"}`)) {
		t.Errorf("value %s", doc.Value)
	}
}

func TestCreateDocConflict(t *testing.T) {
	srv := newTestServer(t)
	createTestDoc(t, srv, "dup", `{}`)
	body, _ := json.Marshal(CreateRequest{ID: "dup"})
	resp, err := http.Post(srv.URL+"/v1/docs", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("status %d, want conflict", resp.StatusCode)
	}
}

func TestGetDocNotFound(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/v1/docs/nope")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status %d, want not found", resp.StatusCode)
	}
}

func postTestEdit(t *testing.T, srv *httptest.Server, id string, rev int, delta string) (*http.Response, UpdateFrame) {
	t.Helper()
	d, err := jot.ParseDelta([]byte(delta))
	if err != nil {
		t.Fatal(err)
	}
	body, err := json.Marshal(EditFrame{Rev: rev, Delta: d})
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(srv.URL+"/v1/docs/"+id+"/edits", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	frame := UpdateFrame{}
	if resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(&frame); err != nil {
			t.Fatal(err)
		}
	}
	return resp, frame
}

func TestPostEdit(t *testing.T) {
	srv := newTestServer(t)
	createTestDoc(t, srv, "doc", `{"n":1}`)
	resp, frame := postTestEdit(t, srv, "doc", 0, `{"n":{"o":"r","v":2}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("edit status %d", resp.StatusCode)
	}
	if frame.Rev != 1 {
		t.Errorf("rev %d, want 1", frame.Rev)
	}
	getResp, err := http.Get(srv.URL + "/v1/docs/doc")
	if err != nil {
		t.Fatal(err)
	}
	defer getResp.Body.Close()
	doc := DocResponse{}
	if err := json.NewDecoder(getResp.Body).Decode(&doc); err != nil {
		t.Fatal(err)
	}
	got, err := parse.Parse(doc.Value)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(got, parse.MustParse(`{"n":2}`)) {
		t.Errorf("value %s", doc.Value)
	}
}

// Two edits rooted at the same revision both land; the second is rebased
// over the first.
func TestPostEditStaleRevisionRebases(t *testing.T) {
	srv := newTestServer(t)
	createTestDoc(t, srv, "doc", `{"x":1,"y":2}`)
	if resp, _ := postTestEdit(t, srv, "doc", 0, `{"x":{"o":"r","v":10}}`); resp.StatusCode != http.StatusOK {
		t.Fatalf("first edit status %d", resp.StatusCode)
	}
	resp, frame := postTestEdit(t, srv, "doc", 0, `{"y":{"o":"r","v":20}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stale edit status %d", resp.StatusCode)
	}
	if frame.Rev != 2 {
		t.Errorf("rev %d, want 2", frame.Rev)
	}
	getResp, err := http.Get(srv.URL + "/v1/docs/doc")
	if err != nil {
		t.Fatal(err)
	}
	defer getResp.Body.Close()
	doc := DocResponse{}
	if err := json.NewDecoder(getResp.Body).Decode(&doc); err != nil {
		t.Fatal(err)
	}
	got, err := parse.Parse(doc.Value)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(got, parse.MustParse(`{"x":10,"y":20}`)) {
		t.Errorf("value %s", doc.Value)
	}
}

func TestPostEditUnknownRevision(t *testing.T) {
	srv := newTestServer(t)
	createTestDoc(t, srv, "doc", `{}`)
	resp, _ := postTestEdit(t, srv, "doc", 7, `{"x":{"o":"+","v":1}}`)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("status %d, want conflict", resp.StatusCode)
	}
}

// wsFrame covers every server-to-client frame shape.
type wsFrame struct {
	Rev   int             `json:"rev"`
	Delta jot.Delta       `json:"delta"`
	Value json.RawMessage `json:"value"`
	Ack   *bool           `json:"ack"`
}

func dialTestWS(t *testing.T, srv *httptest.Server, id string) *websocket.Conn {
	t.Helper()
	url := strings.Replace(srv.URL, "http", "ws", 1) + "/v1/docs/" + id + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readTestFrame(t *testing.T, conn *websocket.Conn) wsFrame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	frame := wsFrame{}
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatal(err)
	}
	return frame
}

func TestWebsocketSnapshotEditBroadcast(t *testing.T) {
	srv := newTestServer(t)
	createTestDoc(t, srv, "shared", `{"n":1}`)

	a := dialTestWS(t, srv, "shared")
	snap := readTestFrame(t, a)
	if snap.Rev != 0 || len(snap.Value) == 0 {
		t.Fatalf("snapshot %+v", snap)
	}
	got, err := parse.Parse(snap.Value)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(got, parse.MustParse(`{"n":1}`)) {
		t.Errorf("snapshot value %s", snap.Value)
	}

	b := dialTestWS(t, srv, "shared")
	readTestFrame(t, b)

	delta, err := jot.ParseDelta([]byte(`{"n":{"o":"r","v":2}}`))
	if err != nil {
		t.Fatal(err)
	}
	if err := a.WriteJSON(EditFrame{Rev: 0, Delta: delta}); err != nil {
		t.Fatal(err)
	}

	ack := readTestFrame(t, a)
	if ack.Ack == nil || !*ack.Ack || ack.Rev != 1 {
		t.Errorf("ack %+v", ack)
	}

	update := readTestFrame(t, b)
	if update.Rev != 1 || update.Delta == nil {
		t.Fatalf("update %+v", update)
	}
	op := update.Delta["n"]
	if op == nil || op.Code != jot.OpReplace {
		t.Errorf("broadcast delta %v", update.Delta)
	}
}

func TestWebsocketBadRevisionNacks(t *testing.T) {
	srv := newTestServer(t)
	createTestDoc(t, srv, "doc", `{}`)
	conn := dialTestWS(t, srv, "doc")
	readTestFrame(t, conn)
	delta, err := jot.ParseDelta([]byte(`{"x":{"o":"+","v":1}}`))
	if err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteJSON(EditFrame{Rev: 9, Delta: delta}); err != nil {
		t.Fatal(err)
	}
	frame := readTestFrame(t, conn)
	if frame.Ack == nil || *frame.Ack {
		t.Errorf("expected nack, got %+v", frame)
	}
}
