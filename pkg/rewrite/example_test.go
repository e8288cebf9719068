package rewrite_test

import (
	"context"
	"fmt"

	"github.com/walteh/paramfix/pkg/rewrite"
)

func ExamplePipeline_Apply() {
	pipeline := rewrite.NewNextParamsPipeline()

	content := "{ params }: { params: { id: string } }\nconst row = await find(params.id)\n"

	result, err := pipeline.Apply(context.Background(), []byte(content))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("%s", result.ModifiedContent)
	fmt.Printf("Steps: %v\n", result.AppliedSteps)
	fmt.Printf("Was Modified: %v\n", result.WasModified)

	// Output:
	// { params }: { params: Promise<{ id: string }> }
	// const row = await find((await params).id)
	// Steps: [wrap-single-field rewrite-id-access]
	// Was Modified: true
}
