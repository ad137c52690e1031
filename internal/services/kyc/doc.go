/*
Package kyc implements the identity-verification intake workflow.

A submission is one unit of work: validate the form, delete any previously
stored documents for the user (best-effort, in parallel), upload the new
documents (in parallel, each with bounded retries), then write exactly one
record. The database upsert is the single terminal write; an upload failure
aborts before anything is persisted.

Usage:

	svc := kyc.NewService(repo, storageClient, kyc.Config{})

	result, err := svc.Submit(ctx, kyc.SubmissionInput{...})

The approval state on a record is never written by this package beyond its
initial Pending value; advancing it is an operator action (see cmd/kycadmin).

Error Handling:

  - *ValidationError: one or more required fields missing or empty
  - ErrFileTooLarge: a document exceeds the size ceiling
  - ErrUploadFailed: a document upload exhausted its retries
  - ErrDuplicateSubmission: lost a concurrent first-submission race
  - anything else: the store was unavailable
*/
package kyc
