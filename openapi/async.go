package openapi

import (
	"github.com/calcserve/openapi-gen/internal/textwriter"
)

// The asynchronous interface is a fixed bank of five request-lifecycle
// endpoints. It does not depend on the discovery document: every function
// gains async semantics through the shared mode query parameter, and the
// lifecycle of the resulting requests is managed through these paths.

const requestIDRef = "- $ref: '#/components/parameters/requestId'"

func (g *Generator) writeAsyncPaths(w *textwriter.Writer) {
	// Collection listing.
	w.WriteLine("/requests:")
	w.Push(2)
	w.WriteLine("get:")
	w.Push(2)
	w.WriteLine("operationId: listAsyncRequests")
	w.WriteLine("summary: List asynchronous requests visible to the client")
	w.WriteLine("parameters:")
	w.Push(2)
	w.WriteLine("- $ref: '#/components/parameters/client'")
	w.Pop()
	w.WriteLine("responses:")
	w.Push(2)
	w.WriteLine("'200':")
	w.Push(2)
	w.WriteLine("description: Collection of asynchronous request states")
	w.WriteLine("content:")
	w.Push(2)
	w.WriteLine("application/json:")
	w.Push(2)
	w.WriteLine("schema:")
	w.Push(2)
	w.WriteLine("type: array")
	w.WriteLine("items:")
	w.Push(2)
	w.WriteLine("$ref: '#/components/schemas/AsyncRequestInfo'")
	w.Pop()
	w.Pop()
	w.Pop()
	w.Pop()
	w.Pop()
	g.writeErrorResponse(w)
	w.Pop()
	w.Pop()
	w.Pop()

	// State query.
	w.WriteLine("/requests/{requestId}/info:")
	w.Push(2)
	w.WriteLine("get:")
	w.Push(2)
	w.WriteLine("operationId: getAsyncRequestInfo")
	w.WriteLine("summary: Query the state of an asynchronous request")
	w.WriteLine("parameters:")
	w.Push(2)
	w.WriteLine(requestIDRef)
	w.Pop()
	w.WriteLine("responses:")
	w.Push(2)
	w.WriteLine("'200':")
	w.Push(2)
	w.WriteLine("description: Current state of the request")
	w.WriteLine("content:")
	w.Push(2)
	w.WriteLine("application/json:")
	w.Push(2)
	w.WriteLine("schema:")
	w.Push(2)
	w.WriteLine("$ref: '#/components/schemas/AsyncRequestInfo'")
	w.Pop()
	w.Pop()
	w.Pop()
	w.Pop()
	g.writeErrorResponse(w)
	w.Pop()
	w.Pop()
	w.Pop()

	// Result retrieval.
	w.WriteLine("/requests/{requestId}/result:")
	w.Push(2)
	w.WriteLine("get:")
	w.Push(2)
	w.WriteLine("operationId: getAsyncRequestResult")
	w.WriteLine("summary: Retrieve the result of a completed asynchronous request")
	w.WriteLine("parameters:")
	w.Push(2)
	w.WriteLine(requestIDRef)
	w.Pop()
	w.WriteLine("responses:")
	w.Push(2)
	w.WriteLine("'200':")
	w.Push(2)
	w.WriteLine("description: Output values of the completed request")
	w.WriteLine("content:")
	w.Push(2)
	w.WriteLine("application/json:")
	w.Push(2)
	w.WriteLine("schema:")
	w.Push(2)
	w.WriteLine("type: object")
	w.WriteLine("properties:")
	w.Push(2)
	w.WriteLine("lhs:")
	w.Push(2)
	w.WriteLine("description: Output values in positional order")
	w.WriteLine("type: array")
	w.WriteLine("items: {}")
	w.Pop()
	w.Pop()
	w.Pop()
	w.Pop()
	w.Pop()
	w.Pop()
	g.writeErrorResponse(w)
	w.Pop()
	w.Pop()
	w.Pop()

	// Cancellation.
	w.WriteLine("/requests/{requestId}/cancel:")
	w.Push(2)
	w.WriteLine("post:")
	w.Push(2)
	w.WriteLine("operationId: cancelAsyncRequest")
	w.WriteLine("summary: Cancel an asynchronous request that has not completed")
	w.WriteLine("parameters:")
	w.Push(2)
	w.WriteLine(requestIDRef)
	w.Pop()
	w.WriteLine("responses:")
	w.Push(2)
	w.WriteLine("'204':")
	w.Push(2)
	w.WriteLine("description: Request cancelled")
	w.Pop()
	g.writeErrorResponse(w)
	w.Pop()
	w.Pop()
	w.Pop()

	// Deletion.
	w.WriteLine("/requests/{requestId}:")
	w.Push(2)
	w.WriteLine("delete:")
	w.Push(2)
	w.WriteLine("operationId: deleteAsyncRequest")
	w.WriteLine("summary: Delete an asynchronous request and its stored result")
	w.WriteLine("parameters:")
	w.Push(2)
	w.WriteLine(requestIDRef)
	w.Pop()
	w.WriteLine("responses:")
	w.Push(2)
	w.WriteLine("'204':")
	w.Push(2)
	w.WriteLine("description: Request deleted")
	w.Pop()
	g.writeErrorResponse(w)
	w.Pop()
	w.Pop()
	w.Pop()
}

func (g *Generator) writeAsyncRequestInfoSchema(w *textwriter.Writer) {
	w.WriteLine("AsyncRequestInfo:")
	w.Push(2)
	w.WriteLine("type: object")
	w.WriteLine("description: State of an asynchronous invocation request")
	w.WriteLine("properties:")
	w.Push(2)
	w.WriteLine("id:")
	w.Push(2)
	w.WriteLine("type: string")
	w.Pop()
	w.WriteLine("self:")
	w.Push(2)
	w.WriteLine("type: string")
	w.WriteLine("description: URL of this request")
	w.Pop()
	w.WriteLine("up:")
	w.Push(2)
	w.WriteLine("type: string")
	w.WriteLine("description: URL of the collection the request belongs to")
	w.Pop()
	w.WriteLine("state:")
	w.Push(2)
	w.WriteLine("type: string")
	w.WriteLine("enum:")
	w.Push(2)
	w.WriteLine("- READING")
	w.WriteLine("- IN_QUEUE")
	w.WriteLine("- PROCESSING")
	w.WriteLine("- READY")
	w.WriteLine("- ERROR")
	w.WriteLine("- CANCELLED")
	w.Pop()
	w.Pop()
	w.WriteLine("lastModifiedSeq:")
	w.Push(2)
	w.WriteLine("type: integer")
	w.WriteLine("format: int64")
	w.Pop()
	w.WriteLine("client:")
	w.Push(2)
	w.WriteLine("type: string")
	w.Pop()
	w.Pop()
	w.WriteLine("required:")
	w.Push(2)
	w.WriteLine("- id")
	w.WriteLine("- state")
	w.Pop()
	w.Pop()
}

func (g *Generator) writeSharedParameters(w *textwriter.Writer) {
	w.WriteLine("parameters:")
	w.Push(2)

	w.WriteLine("mode:")
	w.Push(2)
	w.WriteLine("name: mode")
	w.WriteLine("in: query")
	w.WriteLine("description: Invocation mode; pass async to queue the request instead of waiting")
	w.WriteLine("schema:")
	w.Push(2)
	w.WriteLine("type: string")
	w.WriteLine("enum:")
	w.Push(2)
	w.WriteLine("- sync")
	w.WriteLine("- async")
	w.Pop()
	w.Pop()
	w.Pop()

	w.WriteLine("client:")
	w.Push(2)
	w.WriteLine("name: client")
	w.WriteLine("in: query")
	w.WriteLine("description: Caller-chosen identifier grouping asynchronous requests")
	w.WriteLine("schema:")
	w.Push(2)
	w.WriteLine("type: string")
	w.Pop()
	w.Pop()

	w.WriteLine("requestId:")
	w.Push(2)
	w.WriteLine("name: requestId")
	w.WriteLine("in: path")
	w.WriteLine("required: true")
	w.WriteLine("description: Identifier assigned when the request was created")
	w.WriteLine("schema:")
	w.Push(2)
	w.WriteLine("type: string")
	w.Pop()
	w.Pop()

	w.Pop()
}
